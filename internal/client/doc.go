package client

// Package client talks to the timetable server over HTTP/JSON. It fetches
// snapshots and issues the delete and solve commands. Every request carries a
// fresh X-Request-ID; failures come back as *RequestError and are never
// retried here.
