package checklist

import "context"

// Service loads, edits and saves checklists through a StepStore. Every
// change is saved immediately.
type Service struct {
	store StepStore
}

func NewService(store StepStore) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, taskID, userID string) (*Checklist, error) {
	steps, err := s.store.Load(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	return New(steps), nil
}

// AddSteps appends new unchecked steps after the existing ones.
func (s *Service) AddSteps(ctx context.Context, taskID, userID string, texts []string) (*Checklist, error) {
	list, err := s.Get(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	list.Append(NewSteps(texts)...)
	if err := s.store.Save(ctx, taskID, userID, list.Steps); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) Toggle(ctx context.Context, taskID, userID, stepID string) (*Checklist, error) {
	list, err := s.Get(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	if _, err := list.Toggle(stepID); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, taskID, userID, list.Steps); err != nil {
		return nil, err
	}
	return list, nil
}
