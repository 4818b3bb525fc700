package driven

import "github.com/ColinKinloch/sadm/internal/domain/model"

// BuildSubmitter defines the driven port for handing a build job off to
// the build farm. Submit returns once the job is durably visible to the
// farm; an error means the job was not handed off and no partial state
// is left behind.
type BuildSubmitter interface {
	Submit(job model.BuildJob) error
}
