package utils

import (
	"coursehub/config"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// ProvisionChatRoom asks the companion chat service to create the
// discussion room for a course. The chat service serves the room at
// ws/chat/room/{course_id}/ and shares no state with this application;
// callers treat failures as non-fatal.
func ProvisionChatRoom(courseID uint) error {
	client := resty.New()

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{"course_id": courseID}).
		Post(config.AppConfig.ChatServiceURL + "/rooms")
	if err != nil {
		return err
	}

	if resp.IsError() {
		return fmt.Errorf("chat service returned %d", resp.StatusCode())
	}

	return nil
}
