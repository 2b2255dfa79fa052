// Package mazeapi serves maze generation, validation and retrieval over HTTP.
package mazeapi

import (
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/validation"
)

// GenerateRequest holds the query parameters of a generate call.
// Zero dimensions select the server defaults.
type GenerateRequest struct {
	Width  int    `form:"width" binding:"gte=0"`
	Height int    `form:"height" binding:"gte=0"`
	Name   string `form:"name"`
}

// ListRequest holds the query parameters of a list call.
type ListRequest struct {
	Limit int `form:"limit" binding:"gte=0"`
}

// ListResponse wraps a page of maze records.
type ListResponse struct {
	Mazes []*maze.Record `json:"mazes"`
}

// SubmitResponse reports a stored maze together with its validation result.
type SubmitResponse struct {
	Maze       *maze.Record      `json:"maze,omitempty"`
	Validation validation.Result `json:"validation"`
}
