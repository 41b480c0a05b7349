// Package service provides application-level services for managing users,
// mentorship requests, and meetings with their reminders.
//
// Services orchestrate domain entities, stores, the reminder planner, and
// the notification collaborator. They own transaction boundaries and emit
// events for work that should happen asynchronously.
package service
