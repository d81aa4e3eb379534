// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package importer

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/ludothek/internal/models"
)

// Sentinel errors returned by the coordinator.
var (
	// ErrImportInProgress is returned when another job holds the guard.
	ErrImportInProgress = errors.New("an import job is already running")

	// ErrCredentialsRequired is returned by full syncs without a password.
	ErrCredentialsRequired = errors.New("username and password are required for a full sync")
)

// Error codes carried by JobError.
const (
	CodeInternal            = "INTERNAL_ERROR"
	CodeCredentialsRequired = "CREDENTIALS_REQUIRED"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
)

// JobKind names an import job.
type JobKind string

// Job kinds.
const (
	JobQuickSync      JobKind = "quick_sync"
	JobFullSync       JobKind = "full_sync"
	JobCollectionOnly JobKind = "collection_only"
	JobCompleteSync   JobKind = "complete_sync"
	JobTagPass        JobKind = "tag_pass"
	JobSimilarityPass JobKind = "similarity_pass"
)

// Valid reports whether k is a known job kind.
func (k JobKind) Valid() bool {
	switch k {
	case JobQuickSync, JobFullSync, JobCollectionOnly, JobCompleteSync, JobTagPass, JobSimilarityPass:
		return true
	}
	return false
}

// Credentials authenticate the private collection fetch.
type Credentials struct {
	Username string
	Password string
}

// Params carries the inputs of a job. Zero values fall back to the
// coordinator's configuration.
type Params struct {
	Username    string
	Credentials Credentials
	FastMode    bool
	OnlyMissing bool
	TopK        int
}

// JobResult is the outcome of one job run, as returned to callers and kept
// in the history.
type JobResult struct {
	RunID        string            `json:"run_id"`
	Kind         JobKind           `json:"kind"`
	StartedAt    time.Time         `json:"started_at"`
	Duration     time.Duration     `json:"duration_ns"`
	Sync         *models.SyncStats `json:"sync,omitempty"`
	Tags         *models.TagStats  `json:"tags,omitempty"`
	EdgesCreated *int              `json:"edges_created,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// Succeeded reports whether the job finished without error.
func (r *JobResult) Succeeded() bool {
	return r.Error == ""
}

// JobError is a failed job. Code is stable for API responses; Err is the cause.
type JobError struct {
	Code string
	Kind JobKind
	Err  error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Kind, e.Err)
}

func (e *JobError) Unwrap() error {
	return e.Err
}
