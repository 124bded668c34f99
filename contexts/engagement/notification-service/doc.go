// Package notificationservice delivers admin notifications.
//
// A triggering event (listing submitted, contact form received) is fanned out
// into one Notification per administrator. Writes are independent: a failure
// for one admin never rolls back the others. Created notifications are
// published on the bus so the email relay worker can mail them.
package notificationservice
