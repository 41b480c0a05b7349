// Package task implements background work processing: a worker pool fed by
// an in-memory queue, a poller that sweeps due meeting reminders, and the
// task types executed by the workers (reminder dispatch and immediate
// notice delivery).
//
// Services do not import this package directly; they publish events through
// the events package and NoticeEventHandler turns those into queued tasks.
package task
