package listener_test

import (
	"github.com/ColinKinloch/sadm/internal/domain/model"
)

type fakeBuildQueue struct {
	triggers []model.BuildTrigger
}

func (q *fakeBuildQueue) Push(trigger model.BuildTrigger) {
	q.triggers = append(q.triggers, trigger)
}

type fakeResultQueue struct {
	results []model.RawBuildResult
}

func (q *fakeResultQueue) Push(result model.RawBuildResult) {
	q.results = append(q.results, result)
}

type fakeRecordQueue struct {
	records []model.StatusRecord
}

func (q *fakeRecordQueue) Push(rec model.StatusRecord) {
	q.records = append(q.records, rec)
}
