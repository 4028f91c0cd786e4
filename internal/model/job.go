package model

import "github.com/google/uuid"

// Job is one bag descriptor queued for processing, from the command line,
// a batch file or an HTTP request.
type Job struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Descriptor string `json:"descriptor"`
}

func NewJob(label, descriptor string) Job {
	if label == "" {
		label = descriptor
	}
	return Job{
		ID:         uuid.New().String()[:8],
		Label:      label,
		Descriptor: descriptor,
	}
}
