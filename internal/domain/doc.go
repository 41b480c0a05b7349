// Package domain defines the core business entities of the mentormatch
// service: users, mentorship requests, meetings, and meeting reminders.
// Entities carry their own validation; persistence and transport concerns
// live in the store and api packages respectively.
package domain
