package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"coursehub-backend/application/ports"
	"coursehub-backend/domain/core/entities"
	"coursehub-backend/domain/core/valueobjects"
	pkgerrors "coursehub-backend/pkg/errors"
)

// memStore is an in-memory stand-in for the single-table store. It applies
// write sets with the same semantics as the real adapter: every staged
// condition is checked under one lock and the whole set applies or nothing
// does.
type memStore struct {
	mu         sync.Mutex
	courses    map[string]*entities.Course
	regs       map[string]map[string]*entities.Registration // courseID -> registrationID
	byEmployee map[string]string                            // email|courseID -> registrationID
}

func newMemStore() *memStore {
	return &memStore{
		courses:    make(map[string]*entities.Course),
		regs:       make(map[string]map[string]*entities.Registration),
		byEmployee: make(map[string]string),
	}
}

func employeeKey(email string, courseID valueobjects.CourseID) string {
	return strings.ToUpper(strings.TrimSpace(email)) + "|" + courseID.String()
}

func copyCourse(c *entities.Course) *entities.Course {
	cp, err := entities.ReconstructCourse(
		c.ID(), c.Name(), c.Instructor(), c.StartDate(),
		c.MinSeats(), c.MaxSeats(), c.CurrentCount(),
		c.IsAllotted(), c.Status(), c.CreatedAt(),
	)
	if err != nil {
		panic(err)
	}
	return cp
}

func copyRegistration(r *entities.Registration) *entities.Registration {
	cp, err := entities.ReconstructRegistration(
		r.ID(), r.EmployeeName(), r.Email(), r.CourseID(), r.Status(), r.RegisteredAt(),
	)
	if err != nil {
		panic(err)
	}
	return cp
}

// CourseRepository

func (s *memStore) Create(_ context.Context, course *entities.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := course.ID().String()
	if _, exists := s.courses[key]; exists {
		return pkgerrors.NewConflictError("course offering already exists")
	}
	s.courses[key] = copyCourse(course)
	return nil
}

func (s *memStore) GetByID(_ context.Context, id valueobjects.CourseID) (*entities.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, exists := s.courses[id.String()]
	if !exists {
		return nil, pkgerrors.NewNotFoundError("course offering not found")
	}
	return copyCourse(course), nil
}

// RegistrationRepository

type memRegistrations struct {
	store *memStore
}

func (r *memRegistrations) GetByID(_ context.Context, id valueobjects.RegistrationID) (*entities.Registration, error) {
	courseID, err := id.CourseID()
	if err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	reg, exists := r.store.regs[courseID.String()][id.String()]
	if !exists {
		return nil, pkgerrors.NewNotFoundError("registration not found")
	}
	return copyRegistration(reg), nil
}

func (r *memRegistrations) ListByCourse(_ context.Context, courseID valueobjects.CourseID) ([]*entities.Registration, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	regs := make([]*entities.Registration, 0, len(r.store.regs[courseID.String()]))
	for _, reg := range r.store.regs[courseID.String()] {
		regs = append(regs, copyRegistration(reg))
	}
	sort.Slice(regs, func(i, j int) bool {
		return regs[i].ID().String() < regs[j].ID().String()
	})
	return regs, nil
}

func (r *memRegistrations) ExistsForEmployee(_ context.Context, email string, courseID valueobjects.CourseID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	_, exists := r.store.byEmployee[employeeKey(email, courseID)]
	return exists, nil
}

// WriteSetFactory / WriteSet

type memWriteSetFactory struct {
	store *memStore
}

func (f *memWriteSetFactory) NewWriteSet() ports.WriteSet {
	return &memWriteSet{store: f.store}
}

type stagedOp struct {
	check func() error
	apply func()
}

type memWriteSet struct {
	store *memStore
	ops   []stagedOp
}

func (w *memWriteSet) CreateRegistration(reg *entities.Registration, course *entities.Course, expectedCount int) error {
	regCopy := copyRegistration(reg)
	courseKey := course.ID().String()

	w.ops = append(w.ops, stagedOp{
		check: func() error {
			stored, exists := w.store.courses[courseKey]
			if !exists {
				return pkgerrors.NewConflictError("course row vanished")
			}
			if stored.IsAllotted() || stored.CurrentCount() != expectedCount {
				return pkgerrors.NewConflictError("a concurrent write changed the course state; retry the operation")
			}
			if _, dup := w.store.regs[courseKey][regCopy.ID().String()]; dup {
				return pkgerrors.NewConflictError("registration row already exists")
			}
			if _, dup := w.store.byEmployee[employeeKey(regCopy.Email(), regCopy.CourseID())]; dup {
				return pkgerrors.NewConflictError("employee row already exists")
			}
			return nil
		},
		apply: func() {
			if w.store.regs[courseKey] == nil {
				w.store.regs[courseKey] = make(map[string]*entities.Registration)
			}
			w.store.regs[courseKey][regCopy.ID().String()] = regCopy
			w.store.byEmployee[employeeKey(regCopy.Email(), regCopy.CourseID())] = regCopy.ID().String()
			w.store.courses[courseKey] = copyCourse(course)
		},
	})
	return nil
}

func (w *memWriteSet) RemoveRegistration(reg *entities.Registration, course *entities.Course, expectedCount int) error {
	regID := reg.ID().String()
	empKey := employeeKey(reg.Email(), reg.CourseID())
	courseKey := course.ID().String()
	courseCopy := copyCourse(course)

	w.ops = append(w.ops, stagedOp{
		check: func() error {
			stored, exists := w.store.courses[courseKey]
			if !exists {
				return pkgerrors.NewConflictError("course row vanished")
			}
			if stored.IsAllotted() || stored.CurrentCount() != expectedCount {
				return pkgerrors.NewConflictError("a concurrent write changed the course state; retry the operation")
			}
			if _, exists := w.store.regs[courseKey][regID]; !exists {
				return pkgerrors.NewConflictError("registration row vanished")
			}
			return nil
		},
		apply: func() {
			delete(w.store.regs[courseKey], regID)
			delete(w.store.byEmployee, empKey)
			w.store.courses[courseKey] = courseCopy
		},
	})
	return nil
}

func (w *memWriteSet) FinalizeCourse(course *entities.Course, expectedCount int) error {
	courseKey := course.ID().String()
	courseCopy := copyCourse(course)

	w.ops = append(w.ops, stagedOp{
		check: func() error {
			stored, exists := w.store.courses[courseKey]
			if !exists {
				return pkgerrors.NewConflictError("course row vanished")
			}
			if stored.IsAllotted() {
				return pkgerrors.NewConflictError("course already allotted")
			}
			if stored.CurrentCount() != expectedCount {
				return pkgerrors.NewConflictError("a concurrent write changed the course state; retry the operation")
			}
			return nil
		},
		apply: func() {
			w.store.courses[courseKey] = courseCopy
		},
	})
	return nil
}

func (w *memWriteSet) FinalizeRegistration(reg *entities.Registration) error {
	regCopy := copyRegistration(reg)
	courseKey := reg.CourseID().String()

	w.ops = append(w.ops, stagedOp{
		check: func() error {
			if _, exists := w.store.regs[courseKey][regCopy.ID().String()]; !exists {
				return pkgerrors.NewConflictError("registration row vanished")
			}
			return nil
		},
		apply: func() {
			w.store.regs[courseKey][regCopy.ID().String()] = regCopy
		},
	})
	return nil
}

func (w *memWriteSet) Commit(context.Context) error {
	w.store.mu.Lock()
	defer w.store.mu.Unlock()

	for _, op := range w.ops {
		if err := op.check(); err != nil {
			return err
		}
	}
	for _, op := range w.ops {
		op.apply()
	}
	return nil
}
