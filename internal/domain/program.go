package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrProgramNotFound  = errors.New("no active program")
	ErrUnknownTemplate  = errors.New("unknown template id")
	ErrBadSlotSelection = errors.New("slot selection violates template bounds")
)

// TemplateID names one of the closed set of hand-authored periodization
// templates. The catalog itself lives in the templates package.
type TemplateID string

const (
	TemplateOperator TemplateID = "operator"
	TemplateZulu     TemplateID = "zulu"
	TemplateFighter  TemplateID = "fighter"
	TemplateMass     TemplateID = "mass"
)

// ActiveProgram is the user's live enrollment in a template. One per user,
// replaced wholesale on template switch, advanced on session completion.
type ActiveProgram struct {
	UserID     string            `json:"user_id" bson:"_id"`
	TemplateID TemplateID        `json:"template_id" bson:"template_id"`
	StartDate  time.Time         `json:"start_date" bson:"start_date"`
	Week       int               `json:"week" bson:"week"`       // 1-based
	Session    int               `json:"session" bson:"session"` // 1-based within the week
	Selections map[string][]Lift `json:"selections" bson:"selections"`
	UpdatedAt  time.Time         `json:"updated_at" bson:"updated_at"`
}

type ActiveProgramRepository interface {
	Get(ctx context.Context, userID string) (*ActiveProgram, error)
	Upsert(ctx context.Context, program *ActiveProgram) error
	Delete(ctx context.Context, userID string) error
}
