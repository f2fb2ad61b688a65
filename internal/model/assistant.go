package model

import "time"

type AssistantRole string

const (
	AssistantRoleUser      AssistantRole = "user"
	AssistantRoleAssistant AssistantRole = "assistant"
)

// AssistantMessage is one turn of the assistant chat. Turns are not
// persisted server-side.
type AssistantMessage struct {
	Role      AssistantRole `json:"role"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
}

type AssistantMessageRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}
