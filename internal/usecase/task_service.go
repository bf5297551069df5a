package usecase

import (
	"context"
	"log"
	"time"

	"github.com/Atharva2908/task-manager/internal/entity"
	"github.com/Atharva2908/task-manager/internal/viewmodel"
)

// TaskGateway is the slice of the backend API the task service consumes.
type TaskGateway interface {
	ListTasks(ctx context.Context, token string) ([]entity.Task, error)
	GetTask(ctx context.Context, token, id string) (*entity.Task, error)
	CreateTask(ctx context.Context, token string, req *entity.CreateTaskRequest) (*entity.Task, error)
	UpdateTask(ctx context.Context, token, id string, req *entity.UpdateTaskRequest) (*entity.Task, error)
	DeleteTask(ctx context.Context, token, id string) error
}

// AuditPublisher publishes task mutation audit messages. May be nil when
// the audit pipeline is disabled.
type AuditPublisher interface {
	PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error
}

type TaskService struct {
	backend TaskGateway
	audit   AuditPublisher
	now     func() time.Time
}

func NewTaskService(backend TaskGateway, audit AuditPublisher) *TaskService {
	return &TaskService{
		backend: backend,
		audit:   audit,
		now:     time.Now,
	}
}

// ListView fetches the full collection and computes the page the client
// should render. Role scoping happens inside the view-model, so an
// employee's response never contains another employee's task.
func (s *TaskService) ListView(ctx context.Context, token string, user *entity.User, state viewmodel.ViewState) (*viewmodel.Result, error) {
	tasks, err := s.backend.ListTasks(ctx, token)
	if err != nil {
		return nil, err
	}

	result := viewmodel.Compute(tasks, user, state, s.now())
	return &result, nil
}

func (s *TaskService) GetTask(ctx context.Context, token string, user *entity.User, taskID string) (*entity.Task, error) {
	task, err := s.backend.GetTask(ctx, token, taskID)
	if err != nil {
		return nil, err
	}

	// same visibility boundary as the list view
	if user != nil && user.Role == entity.RoleEmployee && task.AssignedTo != user.ID {
		return nil, entity.ErrForbidden
	}
	return task, nil
}

func (s *TaskService) CreateTask(ctx context.Context, token string, user *entity.User, req *entity.CreateTaskRequest) (*entity.Task, error) {
	if !user.CanManageTasks() {
		return nil, entity.ErrForbidden
	}
	if req.Title == "" {
		return nil, entity.ErrInvalidTaskData
	}

	task, err := s.backend.CreateTask(ctx, token, req)
	if err != nil {
		return nil, err
	}

	s.sendAuditMessage(entity.ActionCreate, user.ID, task.ID, nil, task)
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, token string, user *entity.User, taskID string, req *entity.UpdateTaskRequest) (*entity.Task, error) {
	if user == nil {
		return nil, entity.ErrUnauthorized
	}
	if req.IsEmpty() {
		return nil, entity.ErrNoFieldsToUpdate
	}

	// fetch the current state first: it backs both the access check and
	// the audit diff
	oldTask, err := s.backend.GetTask(ctx, token, taskID)
	if err != nil {
		return nil, err
	}
	if user.Role == entity.RoleEmployee {
		if oldTask.AssignedTo != user.ID {
			return nil, entity.ErrForbidden
		}
		// employees may move their own task through statuses but not
		// reassign or rewrite it
		if req.AssignedTo != nil || req.Title != nil {
			return nil, entity.ErrForbidden
		}
	}

	updatedTask, err := s.backend.UpdateTask(ctx, token, taskID, req)
	if err != nil {
		return nil, err
	}

	s.sendAuditMessage(entity.ActionUpdate, user.ID, taskID, oldTask, updatedTask)
	return updatedTask, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, token string, user *entity.User, taskID string) error {
	if !user.CanManageTasks() {
		return entity.ErrForbidden
	}

	task, err := s.backend.GetTask(ctx, token, taskID)
	if err != nil {
		return err
	}

	if err := s.backend.DeleteTask(ctx, token, taskID); err != nil {
		return err
	}

	s.sendAuditMessage(entity.ActionDelete, user.ID, taskID, task, nil)
	return nil
}

// sendAuditMessage publishes asynchronously and never fails the caller's
// mutation: the audit trail is best-effort.
func (s *TaskService) sendAuditMessage(action entity.ActionType, userID, taskID string, oldTask, newTask *entity.Task) {
	if s.audit == nil {
		return
	}

	auditMsg := &entity.AuditMessage{
		Action:    action,
		UserID:    userID,
		EntityID:  taskID,
		Timestamp: s.now(),
	}

	if oldTask != nil {
		auditMsg.OldValues = taskValues(oldTask)
	}
	if newTask != nil {
		auditMsg.NewValues = taskValues(newTask)
	}
	if oldTask != nil && newTask != nil {
		auditMsg.Changes = taskChanges(oldTask, newTask)
	}

	go func() {
		if err := s.audit.PublishAuditMessage(context.Background(), auditMsg); err != nil {
			log.Printf("failed to publish audit message for task %s: %v", taskID, err)
		}
	}()
}

func taskValues(t *entity.Task) map[string]any {
	return map[string]any{
		"title":       t.Title,
		"description": t.Description,
		"status":      t.Status,
		"priority":    t.Priority,
		"assigned_to": t.AssignedTo,
	}
}

func taskChanges(oldTask, newTask *entity.Task) map[string]any {
	changes := make(map[string]any)
	if oldTask.Title != newTask.Title {
		changes["title"] = map[string]any{"old": oldTask.Title, "new": newTask.Title}
	}
	if oldTask.Description != newTask.Description {
		changes["description"] = map[string]any{"old": oldTask.Description, "new": newTask.Description}
	}
	if oldTask.Status != newTask.Status {
		changes["status"] = map[string]any{"old": oldTask.Status, "new": newTask.Status}
	}
	if oldTask.Priority != newTask.Priority {
		changes["priority"] = map[string]any{"old": oldTask.Priority, "new": newTask.Priority}
	}
	if oldTask.AssignedTo != newTask.AssignedTo {
		changes["assigned_to"] = map[string]any{"old": oldTask.AssignedTo, "new": newTask.AssignedTo}
	}
	return changes
}
