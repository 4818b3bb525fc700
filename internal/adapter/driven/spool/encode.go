// Package spool implements the BuildSubmitter port against the build
// farm's watched job directory: build requests are encoded in the
// coordinator's two-netstring wire format and handed off with an atomic
// rename so the farm never observes a partial file.
package spool

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ColinKinloch/sadm/internal/domain/model"
)

// requestVersion is the protocol version byte the farm's ingestion
// watcher expects as the first netstring.
const requestVersion = "5"

// buildRequest mirrors the coordinator's job schema. Field order is the
// wire order; do not reorder.
type buildRequest struct {
	Branch       string            `json:"branch"`
	BuilderNames []string          `json:"builderNames"`
	JobID        string            `json:"jobid"`
	BaseRev      string            `json:"baserev"` // Always empty at the top level; the real base rev travels in properties.
	PatchLevel   int               `json:"patch_level"`
	PatchBody    *string           `json:"patch_body"`
	Who          string            `json:"who"`
	Comment      string            `json:"comment"`
	Properties   requestProperties `json:"properties"`
}

type requestProperties struct {
	BranchName string `json:"branchname"`
	BaseRev    string `json:"baserev"`
	HeadRev    string `json:"headrev"`
	ShortRev   string `json:"shortrev"`
	PRID       int    `json:"pr_id"`
	Repo       string `json:"repo"`
}

// EncodeNetstring frames a payload as a netstring: decimal length,
// colon, payload, trailing comma.
func EncodeNetstring(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+12)
	out = strconv.AppendInt(out, int64(len(payload)), 10)
	out = append(out, ':')
	out = append(out, payload...)
	out = append(out, ',')
	return out
}

// EncodeBuildRequest serializes a build job in the farm coordinator's
// wire format: a netstring-wrapped version marker followed by a
// netstring-wrapped ASCII JSON payload. The coordinator's parser is
// fixed, so the framing must match byte for byte. Any non-ASCII byte in
// the job's fields is a caller error.
func EncodeBuildRequest(job model.BuildJob) ([]byte, error) {
	req := buildRequest{
		Branch:       fmt.Sprintf("refs/pull/%d/head", job.PullRequestID),
		BuilderNames: job.BuilderNames,
		JobID:        job.JobID,
		PatchLevel:   0,
		PatchBody:    nil,
		Who:          job.RequestedBy,
		Comment:      job.Comment,
		Properties: requestProperties{
			BranchName: fmt.Sprintf("pr-%d", job.PullRequestID),
			BaseRev:    job.BaseRev,
			HeadRev:    job.HeadRev,
			ShortRev:   job.ShortRev,
			PRID:       job.PullRequestID,
			Repo:       job.Repo,
		},
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding build request for %s: %w", job.JobID, err)
	}
	for i, b := range payload {
		if b > 0x7f {
			return nil, fmt.Errorf("encoding build request for %s: non-ASCII byte 0x%02x at offset %d", job.JobID, b, i)
		}
	}

	out := EncodeNetstring([]byte(requestVersion))
	out = append(out, EncodeNetstring(payload)...)
	return out, nil
}
