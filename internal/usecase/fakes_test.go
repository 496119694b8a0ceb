package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/fadilmartias/resume-analyzer/internal/service"
)

type fakeAnalysisRepo struct {
	mu      sync.Mutex
	records []model.AnalysisRecord
	err     error
}

func (r *fakeAnalysisRepo) Create(_ context.Context, record *model.AnalysisRecord) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeAnalysisRepo) Count(context.Context) (int64, error) {
	return int64(len(r.records)), r.err
}

func (r *fakeAnalysisRepo) List(_ context.Context, offset, limit int) ([]model.AnalysisRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	if limit <= 0 {
		return append([]model.AnalysisRecord(nil), r.records...), nil
	}
	if offset >= len(r.records) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.records) {
		end = len(r.records)
	}
	return append([]model.AnalysisRecord(nil), r.records[offset:end]...), nil
}

func (r *fakeAnalysisRepo) CountByField(context.Context) ([]repository.LabelCount, error) {
	return countLabels(r.records, func(m model.AnalysisRecord) string { return m.PredictedField }), r.err
}

func (r *fakeAnalysisRepo) CountByLevel(context.Context) ([]repository.LabelCount, error) {
	return countLabels(r.records, func(m model.AnalysisRecord) string { return m.UserLevel }), r.err
}

func (r *fakeAnalysisRepo) Scores(context.Context) ([]int, error) {
	scores := make([]int, 0, len(r.records))
	for _, rec := range r.records {
		scores = append(scores, rec.ResumeScore)
	}
	return scores, r.err
}

func countLabels(records []model.AnalysisRecord, label func(model.AnalysisRecord) string) []repository.LabelCount {
	counts := map[string]int64{}
	for _, r := range records {
		counts[label(r)]++
	}
	out := make([]repository.LabelCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, repository.LabelCount{Label: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

type fakeFeedbackRepo struct {
	items []model.Feedback
	err   error
}

func (r *fakeFeedbackRepo) Create(_ context.Context, f *model.Feedback) error {
	if r.err != nil {
		return r.err
	}
	r.items = append(r.items, *f)
	return nil
}

func (r *fakeFeedbackRepo) Recent(_ context.Context, limit int) ([]model.Feedback, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]model.Feedback, 0, limit)
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.items[i])
	}
	return out, nil
}

func (r *fakeFeedbackRepo) CountByScore(context.Context) ([]repository.LabelCount, error) {
	counts := map[int]int64{}
	for _, f := range r.items {
		counts[f.FeedScore]++
	}
	var out []repository.LabelCount
	for score := MinFeedbackScore; score <= MaxFeedbackScore; score++ {
		if n := counts[score]; n > 0 {
			out = append(out, repository.LabelCount{Label: string(rune('0' + score)), Count: n})
		}
	}
	return out, r.err
}

type fakeStorage struct {
	saved map[string][]byte
	err   error
}

func (s *fakeStorage) Save(_ context.Context, name string, data []byte, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.saved == nil {
		s.saved = map[string][]byte{}
	}
	s.saved[name] = data
	return "/uploads/" + name, nil
}

type fakeGeo struct {
	loc service.Location
	ips []string
}

func (g *fakeGeo) Locate(_ context.Context, ip string) service.Location {
	g.ips = append(g.ips, ip)
	return g.loc
}

type fakeSkills struct {
	skills []string
	err    error
	calls  int
}

func (s *fakeSkills) ExtractSkills(context.Context, string) ([]string, error) {
	s.calls++
	return s.skills, s.err
}

var errBoom = errors.New("boom")
