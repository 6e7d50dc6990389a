// Package memory provides an in-memory implementation of every repository
// interface. It backs the test suites and makes the services runnable
// without a MongoDB instance.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"fitforge/internal/domain"
	"fitforge/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds all records behind one mutex. A single Store satisfies every
// repository interface plus TxRunner.
type Store struct {
	mu sync.Mutex

	users       map[primitive.ObjectID]domain.User
	profiles    map[primitive.ObjectID]domain.UserProfile // keyed by profile ID
	plans       map[primitive.ObjectID]domain.Plan
	workouts    map[primitive.ObjectID]domain.Workout
	exercises   map[primitive.ObjectID]domain.Exercise
	workoutLogs map[primitive.ObjectID]domain.WorkoutLog
	setLogs     []domain.SetLog // slice keeps insertion order
	photos      map[primitive.ObjectID]domain.ProgressPhoto
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:       make(map[primitive.ObjectID]domain.User),
		profiles:    make(map[primitive.ObjectID]domain.UserProfile),
		plans:       make(map[primitive.ObjectID]domain.Plan),
		workouts:    make(map[primitive.ObjectID]domain.Workout),
		exercises:   make(map[primitive.ObjectID]domain.Exercise),
		workoutLogs: make(map[primitive.ObjectID]domain.WorkoutLog),
		photos:      make(map[primitive.ObjectID]domain.ProgressPhoto),
	}
}

// WithTransaction runs fn directly. The store serializes every operation
// through one mutex, so there is nothing to roll back; partial-failure
// semantics of real transactions are covered by the Mongo implementation.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Users returns a UserRepository view of the store.
func (s *Store) Users() repository.UserRepository { return (*userStore)(s) }

// Profiles returns a ProfileRepository view of the store.
func (s *Store) Profiles() repository.ProfileRepository { return (*profileStore)(s) }

// Plans returns a PlanRepository view of the store.
func (s *Store) Plans() repository.PlanRepository { return (*planStore)(s) }

// Workouts returns a WorkoutRepository view of the store.
func (s *Store) Workouts() repository.WorkoutRepository { return (*workoutStore)(s) }

// Exercises returns an ExerciseRepository view of the store.
func (s *Store) Exercises() repository.ExerciseRepository { return (*exerciseStore)(s) }

// WorkoutLogs returns a WorkoutLogRepository view of the store.
func (s *Store) WorkoutLogs() repository.WorkoutLogRepository { return (*workoutLogStore)(s) }

// SetLogs returns a SetLogRepository view of the store.
func (s *Store) SetLogs() repository.SetLogRepository { return (*setLogStore)(s) }

// Photos returns a PhotoRepository view of the store.
func (s *Store) Photos() repository.PhotoRepository { return (*photoStore)(s) }

// Each entity gets its own named view type so that one Store can satisfy
// several interfaces with colliding method names (Create, GetByID, ...).

// === Users ===

type userStore Store

func (s *userStore) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return user.ID, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *userStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

// === Profiles ===

type profileStore Store

func (s *profileStore) Create(ctx context.Context, profile *domain.UserProfile) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	s.profiles[profile.ID] = *profile
	return profile.ID, nil
}

func (s *profileStore) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.UserID == userID {
			profile := p
			return &profile, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *profileStore) Update(ctx context.Context, userID primitive.ObjectID, update domain.ProfileUpdate) (*domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.profiles {
		if p.UserID != userID {
			continue
		}
		if update.Age != nil {
			p.Age = update.Age
		}
		if update.Gender != nil {
			p.Gender = *update.Gender
		}
		if update.Height != nil {
			p.Height = update.Height
		}
		if update.Weight != nil {
			p.Weight = update.Weight
		}
		if update.Goal != nil {
			p.Goal = *update.Goal
		}
		if update.ExperienceLevel != nil {
			p.ExperienceLevel = *update.ExperienceLevel
		}
		if update.DaysPerWeek != nil {
			p.DaysPerWeek = *update.DaysPerWeek
		}
		if update.Equipment != nil {
			p.Equipment = *update.Equipment
		}
		if update.Injuries != nil {
			p.Injuries = *update.Injuries
		}
		p.UpdatedAt = time.Now().UTC()
		s.profiles[id] = p
		profile := p
		return &profile, nil
	}
	return nil, repository.ErrNotFound
}

func (s *profileStore) Delete(ctx context.Context, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.profiles {
		if p.UserID == userID {
			delete(s.profiles, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

// === Plans ===

type planStore Store

func (s *planStore) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan.ID = primitive.NewObjectID()
	if plan.Status == "" {
		plan.Status = domain.PlanStatusActive
	}
	plan.CreatedAt = time.Now().UTC()
	s.plans[plan.ID] = *plan
	return plan.ID, nil
}

func (s *planStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *planStore) GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var newest *domain.Plan
	for _, p := range s.plans {
		if p.UserID != userID || p.Status != domain.PlanStatusActive {
			continue
		}
		p := p
		if newest == nil || p.CreatedAt.After(newest.CreatedAt) {
			newest = &p
		}
	}
	if newest == nil {
		return nil, repository.ErrNotFound
	}
	return newest, nil
}

func (s *planStore) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var plans []domain.Plan
	for _, p := range s.plans {
		if p.UserID == userID {
			plans = append(plans, p)
		}
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].CreatedAt.After(plans[j].CreatedAt) })
	return plans, nil
}

func (s *planStore) ArchiveActiveByUserID(ctx context.Context, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.plans {
		if p.UserID == userID && p.Status == domain.PlanStatusActive {
			p.Status = domain.PlanStatusArchived
			s.plans[id] = p
		}
	}
	return nil
}

// === Workouts ===

type workoutStore Store

func (s *workoutStore) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	workout.ID = primitive.NewObjectID()
	s.workouts[workout.ID] = *workout
	return workout.ID, nil
}

func (s *workoutStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &w, nil
}

func (s *workoutStore) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var workouts []domain.Workout
	for _, w := range s.workouts {
		if w.PlanID == planID {
			workouts = append(workouts, w)
		}
	}
	sort.Slice(workouts, func(i, j int) bool { return workouts[i].DayNumber < workouts[j].DayNumber })
	return workouts, nil
}

// === Exercises ===

type exerciseStore Store

func (s *exerciseStore) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exercise.ID = primitive.NewObjectID()
	s.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (s *exerciseStore) GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var exercises []domain.Exercise
	for _, e := range s.exercises {
		if e.WorkoutID == workoutID {
			exercises = append(exercises, e)
		}
	}
	sort.Slice(exercises, func(i, j int) bool { return exercises[i].Order < exercises[j].Order })
	return exercises, nil
}

// === Workout Logs ===

type workoutLogStore Store

func (s *workoutLogStore) Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if log.Date.IsZero() {
		log.Date = now
	}
	if log.StartedAt == nil {
		log.StartedAt = &now
	}
	if log.Status == "" {
		log.Status = domain.LogStatusInProgress
	}
	s.workoutLogs[log.ID] = *log
	return log.ID, nil
}

func (s *workoutLogStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.workoutLogs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &l, nil
}

func (s *workoutLogStore) Complete(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.workoutLogs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if l.Status == domain.LogStatusInProgress {
		now := time.Now().UTC()
		l.Status = domain.LogStatusCompleted
		l.CompletedAt = &now
		s.workoutLogs[id] = l
	}
	return &l, nil
}

func (s *workoutLogStore) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var logs []domain.WorkoutLog
	for _, l := range s.workoutLogs {
		if l.UserID == userID {
			logs = append(logs, l)
		}
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Date.After(logs[j].Date) })
	return logs, nil
}

// === Set Logs ===

type setLogStore Store

func (s *setLogStore) Create(ctx context.Context, setLog *domain.SetLog) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	setLog.ID = primitive.NewObjectID()
	s.setLogs = append(s.setLogs, *setLog)
	return setLog.ID, nil
}

func (s *setLogStore) GetByWorkoutLogID(ctx context.Context, workoutLogID primitive.ObjectID) ([]domain.SetLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var setLogs []domain.SetLog
	for _, sl := range s.setLogs {
		if sl.WorkoutLogID == workoutLogID {
			setLogs = append(setLogs, sl)
		}
	}
	return setLogs, nil
}

// === Photos ===

type photoStore Store

func (s *photoStore) Create(ctx context.Context, photo *domain.ProgressPhoto) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	photo.ID = primitive.NewObjectID()
	if photo.UploadedAt.IsZero() {
		photo.UploadedAt = time.Now().UTC()
	}
	s.photos[photo.ID] = *photo
	return photo.ID, nil
}

func (s *photoStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressPhoto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.photos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *photoStore) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgressPhoto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var photos []domain.ProgressPhoto
	for _, p := range s.photos {
		if p.UserID == userID {
			photos = append(photos, p)
		}
	}
	sort.Slice(photos, func(i, j int) bool { return photos[i].UploadedAt.After(photos[j].UploadedAt) })
	return photos, nil
}

func (s *photoStore) Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.photos[id]
	if !ok || p.UserID != userID {
		return repository.ErrNotFound
	}
	delete(s.photos, id)
	return nil
}
