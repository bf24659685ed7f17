package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khiasu/UniManagePro/internal/domain"
	"github.com/khiasu/UniManagePro/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultWorkingStart = "09:00"
	defaultWorkingEnd   = "15:00"
)

// Seed populates the store with the standard campus departments, resources and
// the demo user. Mirrors the SQL seed migration so dev mode and the database
// backends expose the same catalogue.
func (s *Store) Seed(ctx context.Context) error {
	depts := []domain.Department{
		{Name: "Computer Science", Code: "CS", Description: "Computer Science Department", Icon: "fas fa-desktop", Color: "blue"},
		{Name: "Chemistry", Code: "CHEM", Description: "Chemistry Department", Icon: "fas fa-flask", Color: "green"},
		{Name: "Physics", Code: "PHYS", Description: "Physics Department", Icon: "fas fa-atom", Color: "purple"},
		{Name: "Biology", Code: "BIO", Description: "Biology Department", Icon: "fas fa-dna", Color: "red"},
		{Name: "Mathematics", Code: "MATH", Description: "Mathematics Department", Icon: "fas fa-calculator", Color: "orange"},
		{Name: "General Facilities", Code: "GEN", Description: "General University Facilities", Icon: "fas fa-building", Color: "gray"},
	}

	byCode := make(map[string]uuid.UUID, len(depts))
	for i := range depts {
		depts[i].ID = uuid.New()
		byCode[depts[i].Code] = depts[i].ID
		if err := s.CreateDepartment(ctx, &depts[i]); err != nil {
			return fmt.Errorf("seed department %s: %w", depts[i].Code, err)
		}
	}

	resources := []domain.Resource{
		{
			Name: "Computer Lab 1", Type: "computer_lab", DepartmentID: byCode["CS"],
			Capacity: 30, Equipment: []string{"Computers", "Projector", "Whiteboard"},
			Description: "Main computer lab with latest hardware", Location: "CS Building, Floor 2",
		},
		{
			Name: "Computer Lab 2", Type: "computer_lab", DepartmentID: byCode["CS"],
			Capacity: 25, Equipment: []string{"Computers", "Smart Board"},
			Description: "Secondary computer lab for programming courses", Location: "CS Building, Floor 3",
		},
		{
			Name: "Organic Chemistry Lab", Type: "chemistry_lab", DepartmentID: byCode["CHEM"],
			Capacity: 24, Equipment: []string{"Lab Equipment", "Fume Hood", "Safety Equipment"},
			Description: "Advanced chemistry laboratory", Location: "Chemistry Building, Floor 1",
			RequiresApproval: true,
		},
		{
			Name: "Physics Lab A", Type: "physics_lab", DepartmentID: byCode["PHYS"],
			Capacity: 20, Equipment: []string{"Oscilloscopes", "Function Generators", "Lab Benches"},
			Description: "Electronics and circuits laboratory", Location: "Physics Building, Floor 2",
		},
		{
			Name: "Main Auditorium", Type: "auditorium", DepartmentID: byCode["GEN"],
			Capacity: 500, Equipment: []string{"Sound System", "Stage", "Projector", "Lighting"},
			Description: "Main university auditorium for large events", Location: "Main Building, Ground Floor",
			RequiresApproval: true,
		},
		{
			Name: "Seminar Hall A", Type: "seminar_hall", DepartmentID: byCode["GEN"],
			Capacity: 50, Equipment: []string{"Projector", "Sound System", "Conference Table"},
			Description: "Medium-sized seminar hall", Location: "Academic Block, Floor 1",
		},
		{
			Name: "Basketball Court", Type: "sports_court", DepartmentID: byCode["GEN"],
			Capacity: 100, Equipment: []string{"Basketball Hoops", "Scoreboard", "Benches"},
			Description: "Indoor basketball court", Location: "Sports Complex",
		},
	}

	for i := range resources {
		r := &resources[i]
		r.ID = uuid.New()
		r.IsActive = true
		r.CreatedAt = time.Now()
		r.WorkingHoursStart = defaultWorkingStart
		r.WorkingHoursEnd = defaultWorkingEnd
		r.HasWorkingHours = true
		// Courts and grounds are open around the clock.
		if r.Type == "sports_court" || r.Type == "sports_ground" {
			r.HasWorkingHours = false
			r.WorkingHoursStart = "00:00"
			r.WorkingHoursEnd = "23:59"
		}
		if err := s.CreateResource(ctx, r); err != nil {
			return fmt.Errorf("seed resource %s: %w", r.Name, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	demo := &domain.User{
		ID:           uuid.New(),
		Username:     "sarah.chen",
		Email:        "sarah.chen@university.edu",
		PasswordHash: string(hash),
		FirstName:    "Sarah",
		LastName:     "Chen",
		Role:         domain.RoleFaculty,
		Department:   "Computer Science",
		CreatedAt:    time.Now(),
	}
	if err := s.CreateUser(ctx, demo); err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}

	return nil
}

// CopyInto writes every record in src to dst. Used to push the seed catalogue
// into a freshly created SQL-backed store.
func CopyInto(ctx context.Context, src *Store, dst repository.Store) error {
	depts, err := src.ListDepartments(ctx)
	if err != nil {
		return err
	}
	for i := range depts {
		if err := dst.CreateDepartment(ctx, &depts[i]); err != nil {
			return fmt.Errorf("copy department %s: %w", depts[i].Code, err)
		}
	}

	resources, err := src.ListResources(ctx)
	if err != nil {
		return err
	}
	for i := range resources {
		if err := dst.CreateResource(ctx, &resources[i]); err != nil {
			return fmt.Errorf("copy resource %s: %w", resources[i].Name, err)
		}
	}

	src.mu.RLock()
	users := make([]domain.User, 0, len(src.users))
	for _, u := range src.users {
		users = append(users, u)
	}
	src.mu.RUnlock()
	for i := range users {
		if err := dst.CreateUser(ctx, &users[i]); err != nil {
			return fmt.Errorf("copy user %s: %w", users[i].Username, err)
		}
	}

	bookings, err := src.ListBookings(ctx)
	if err != nil {
		return err
	}
	for i := range bookings {
		if err := dst.CreateBooking(ctx, &bookings[i]); err != nil {
			return fmt.Errorf("copy booking %s: %w", bookings[i].ID, err)
		}
	}
	return nil
}
