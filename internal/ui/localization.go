package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyRefresh            = "refresh"
	KeySolve              = "solve"
	KeySolving            = "solving"
	KeyByRoom             = "by_room"
	KeyByTeacher          = "by_teacher"
	KeyByStudentGroup     = "by_student_group"
	KeyUnassigned         = "unassigned"
	KeyNoUnassigned       = "no_unassigned"
	KeyNoTimetable        = "no_timetable"
	KeyDelete             = "delete"
	KeyDeleteRoom         = "delete_room"
	KeyDeleteTimeslot     = "delete_timeslot"
	KeyDeleteLesson       = "delete_lesson"
	KeyConfirmDeleteTitle = "confirm_delete_title"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyServerURL          = "server_url"
	KeyRefreshInterval    = "refresh_interval"
	KeyRequestTimeout     = "request_timeout"
	KeyConfirmDelete      = "confirm_delete"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeySettingsSaved      = "settings_saved"
	KeyInvalidURL         = "invalid_url"
	KeyError              = "error"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "School Timetabling",
		KeyRefresh:            "Refresh",
		KeySolve:              "Solve",
		KeySolving:            "Solving...",
		KeyByRoom:             "By room",
		KeyByTeacher:          "By teacher",
		KeyByStudentGroup:     "By student group",
		KeyUnassigned:         "Unassigned",
		KeyNoUnassigned:       "All lessons are assigned",
		KeyNoTimetable:        "No timetable loaded yet",
		KeyDelete:             "Delete",
		KeyDeleteRoom:         "Delete room %s?",
		KeyDeleteTimeslot:     "Delete timeslot %s?",
		KeyDeleteLesson:       "Delete lesson %s?",
		KeyConfirmDeleteTitle: "Confirm delete",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyServerURL:          "Server URL",
		KeyRefreshInterval:    "Refresh interval while solving (seconds)",
		KeyRequestTimeout:     "Request timeout (seconds)",
		KeyConfirmDelete:      "Ask before deleting",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyInvalidURL:         "Invalid URL",
		KeyError:              "Error",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "Школьное расписание",
		KeyRefresh:            "Обновить",
		KeySolve:              "Составить",
		KeySolving:            "Составление...",
		KeyByRoom:             "По кабинетам",
		KeyByTeacher:          "По учителям",
		KeyByStudentGroup:     "По классам",
		KeyUnassigned:         "Не распределены",
		KeyNoUnassigned:       "Все уроки распределены",
		KeyNoTimetable:        "Расписание ещё не загружено",
		KeyDelete:             "Удалить",
		KeyDeleteRoom:         "Удалить кабинет %s?",
		KeyDeleteTimeslot:     "Удалить время %s?",
		KeyDeleteLesson:       "Удалить урок %s?",
		KeyConfirmDeleteTitle: "Подтверждение",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeyServerURL:          "Адрес сервера",
		KeyRefreshInterval:    "Интервал обновления (секунды)",
		KeyRequestTimeout:     "Таймаут запроса (секунды)",
		KeyConfirmDelete:      "Спрашивать перед удалением",
		KeySave:               "Сохранить",
		KeyCancel:             "Отмена",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeyInvalidURL:         "Неверный URL",
		KeyError:              "Ошибка",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:           "Horário Escolar",
		KeyRefresh:            "Atualizar",
		KeySolve:              "Resolver",
		KeySolving:            "Resolvendo...",
		KeyByRoom:             "Por sala",
		KeyByTeacher:          "Por professor",
		KeyByStudentGroup:     "Por turma",
		KeyUnassigned:         "Não atribuídas",
		KeyNoUnassigned:       "Todas as aulas estão atribuídas",
		KeyNoTimetable:        "Nenhum horário carregado",
		KeyDelete:             "Excluir",
		KeyDeleteRoom:         "Excluir a sala %s?",
		KeyDeleteTimeslot:     "Excluir o horário %s?",
		KeyDeleteLesson:       "Excluir a aula %s?",
		KeyConfirmDeleteTitle: "Confirmar exclusão",
		KeySettings:           "Configurações",
		KeyFile:               "Arquivo",
		KeyLanguage:           "Idioma",
		KeyServerURL:          "URL do servidor",
		KeyRefreshInterval:    "Intervalo de atualização (segundos)",
		KeyRequestTimeout:     "Tempo limite da requisição (segundos)",
		KeyConfirmDelete:      "Perguntar antes de excluir",
		KeySave:               "Salvar",
		KeyCancel:             "Cancelar",
		KeySettingsSaved:      "Configurações salvas com sucesso!",
		KeyInvalidURL:         "URL inválida",
		KeyError:              "Erro",
	}
}
