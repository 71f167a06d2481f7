package domain

import (
	"fmt"
	"strings"
)

// Status is the article lifecycle state.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusDeleted   Status = "DELETED"
)

const DefaultStatus = StatusDraft

func ParseStatus(s string) (Status, error) {
	if s == "" {
		return DefaultStatus, nil
	}
	st := Status(strings.ToUpper(s))
	switch st {
	case StatusDraft, StatusPublished, StatusDeleted:
		return st, nil
	default:
		return "", fmt.Errorf("invalid status: %q", s)
	}
}

func (s Status) String() string {
	return string(s)
}

func (s Status) Validate() error {
	switch s {
	case StatusDraft, StatusPublished, StatusDeleted:
		return nil
	default:
		return fmt.Errorf("invalid status: %q", s)
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	st, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Priority is the editorial weight of an article.
type Priority string

const (
	PriorityDefault  Priority = "DEFAULT"
	PriorityTopStory Priority = "TOP_STORY"
	PriorityBreaking Priority = "BREAKING"
)

const DefaultPriority = PriorityDefault

func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return DefaultPriority, nil
	}
	p := Priority(strings.ToUpper(s))
	switch p {
	case PriorityDefault, PriorityTopStory, PriorityBreaking:
		return p, nil
	default:
		return "", fmt.Errorf("invalid priority: %q", s)
	}
}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) Validate() error {
	switch p {
	case PriorityDefault, PriorityTopStory, PriorityBreaking:
		return nil
	default:
		return fmt.Errorf("invalid priority: %q", p)
	}
}

func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(text []byte) error {
	pr, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = pr
	return nil
}
