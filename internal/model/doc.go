package model

// Package model defines the domain data delivered by the scheduling server:
// rooms, timeslots, lessons, the solver status enum and the snapshot that
// bundles them. Structures decode directly from the server JSON and carry the
// small display helpers shared by every front end.
