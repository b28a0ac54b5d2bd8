package service

import (
	"fmt"
	"time"
)

const reminderTimeLayout = "Mon, 02 Jan 2006 15:04 MST"

func reminderEmailTemplate(task string, deadline time.Time, todosURL, appName string) (string, string) {
	subject := fmt.Sprintf("Reminder: %s", task)
	body := fmt.Sprintf(`Hi,

This is your reminder for:

  %s

It is due %s.

See your to-do list: %s

Best,
The %s Team`, task, deadline.Format(reminderTimeLayout), todosURL, appName)

	return subject, body
}
