package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/timetable-viewer/internal/client"
	"github.com/ytget/timetable-viewer/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	serverURLEntry *widget.Entry
	intervalEntry  *widget.Entry
	timeoutEntry   *widget.Entry
	languageSelect *widget.Select
	confirmCheck   *widget.Check

	languageCodes map[string]string // display name -> code
}

// ShowSettingsDialog opens the settings dialog. onSaved runs after a save.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, localization, window, onSaved)
	sd.Show()
	return sd
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.serverURLEntry = widget.NewEntry()
	sd.serverURLEntry.SetPlaceHolder(config.DefaultServerURL)
	sd.serverURLEntry.Validator = func(s string) error {
		_, err := client.ParseServerURL(s)
		return err
	}

	sd.intervalEntry = widget.NewEntry()
	sd.intervalEntry.SetPlaceHolder(strconv.Itoa(config.MinRefreshInterval) + "-" + strconv.Itoa(config.MaxRefreshInterval))

	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder(strconv.Itoa(config.MinRequestTimeout) + "-" + strconv.Itoa(config.MaxRequestTimeout))

	// Language selection shows display names, stores codes
	sd.languageCodes = make(map[string]string)
	languageOptions := []string{}
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageOptions = append(languageOptions, name)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	sd.confirmCheck = widget.NewCheck(sd.localization.GetText(KeyConfirmDelete), nil)

	form := widget.NewForm(
		widget.NewFormItem(sd.localization.GetText(KeyServerURL), sd.serverURLEntry),
		widget.NewFormItem(sd.localization.GetText(KeyRefreshInterval), sd.intervalEntry),
		widget.NewFormItem(sd.localization.GetText(KeyRequestTimeout), sd.timeoutEntry),
		widget.NewFormItem(sd.localization.GetText(KeyLanguage), sd.languageSelect),
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		container.NewVBox(form, sd.confirmCheck),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(DialogWidth, DialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.serverURLEntry.SetText(sd.settings.GetServerURL())
	sd.intervalEntry.SetText(strconv.Itoa(sd.settings.GetRefreshInterval()))
	sd.timeoutEntry.SetText(strconv.Itoa(sd.settings.GetRequestTimeout()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
	sd.confirmCheck.SetChecked(sd.settings.GetConfirmDelete())
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if err := sd.serverURLEntry.Validate(); err != nil {
		dialog.ShowError(err, sd.window)
		return
	}
	sd.settings.SetServerURL(sd.serverURLEntry.Text)

	if interval, err := strconv.Atoi(sd.intervalEntry.Text); err == nil {
		sd.settings.SetRefreshInterval(interval)
	}
	if timeout, err := strconv.Atoi(sd.timeoutEntry.Text); err == nil {
		sd.settings.SetRequestTimeout(timeout)
	}

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	sd.settings.SetConfirmDelete(sd.confirmCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}
