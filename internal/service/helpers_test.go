package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"schoolsync/backend/internal/calendar"
	"schoolsync/backend/internal/model"
)

var testLogger = zap.NewNop()

func seedTeacher(s *memStore, hourly float64) model.Teacher {
	teacher := model.Teacher{
		TeacherID: uuid.New().String(),
		FirstName: "Ana",
		LastName:  "Horvat",
		Email:     uuid.New().String() + "@school.test",
		Phone:     "0911234567",
		Hourly:    hourly,
		HireDate:  time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	s.teachers[teacher.TeacherID] = teacher
	return teacher
}

func seedStudent(s *memStore, email string) model.Student {
	student := model.Student{
		StudentID: uuid.New().String(),
		FirstName: "Ivan",
		LastName:  "Kovac",
		Email:     email,
		Phone:     "0987654321",
		BirthYear: 2008,
	}
	s.students[student.StudentID] = student
	return student
}

func seedClass(s *memStore, teacherID string, capacity int) model.Class {
	starts := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)
	class := model.Class{
		ClassID:     uuid.New().String(),
		Name:        "Math prep",
		TeacherID:   teacherID,
		Capacity:    capacity,
		StartsAt:    starts,
		EndsAt:      starts.Add(90 * time.Minute),
		Description: "exam preparation",
		EventID:     "evt-seeded-" + uuid.New().String()[:8],
	}
	s.classes[class.ClassID] = class
	return class
}

func seedClass2(s *memStore, teacherID string) model.Class {
	starts := time.Date(2024, 5, 7, 16, 0, 0, 0, time.UTC)
	class := model.Class{
		ClassID:     uuid.New().String(),
		Name:        "English conversation",
		TeacherID:   teacherID,
		Capacity:    8,
		StartsAt:    starts,
		EndsAt:      starts.Add(time.Hour),
		Description: "spoken practice",
		EventID:     "evt-seeded-" + uuid.New().String()[:8],
	}
	s.classes[class.ClassID] = class
	return class
}

func seedEvent(g *fakeGateway, class model.Class) {
	g.events[class.EventID] = &fakeEvent{req: calendar.EventRequest{
		Name:        class.Name,
		StartsAt:    class.StartsAt,
		EndsAt:      class.EndsAt,
		Description: class.Description,
		Frequency:   class.Frequency,
	}}
}
