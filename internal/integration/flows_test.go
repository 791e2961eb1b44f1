package integration

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/gymapi/internal/assessments"
	"github.com/2beens/gymapi/internal/nutrition"
	"github.com/2beens/gymapi/internal/users"
	"github.com/2beens/gymapi/internal/workouts"
)

func ptr[T any](v T) *T {
	return &v
}

func (s *IntegrationTestSuite) TestAuth() {
	t := s.T()
	student := s.registerAndLogin(users.RoleStudent)

	// same email again
	resp, _ := s.do(http.MethodPost, "/auth/register", "", users.RegisterRequest{
		Name: "Outra", Email: student.Email, Password: testPassword, Role: users.RoleStudent,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// admins cannot self-register
	resp, _ = s.do(http.MethodPost, "/auth/register", "", users.RegisterRequest{
		Name: "Chefe", Email: "chefe@gym.com", Password: testPassword, Role: users.RoleAdmin,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": student.Email, "password": "errada123"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/assessments", student.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(http.MethodPost, "/auth/logout", student.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/assessments", student.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestAssessmentsFlow() {
	t := s.T()
	trainer := s.registerAndLogin(users.RoleTrainer)
	student := s.registerAndLogin(users.RoleStudent)
	otherStudent := s.registerAndLogin(users.RoleStudent)

	resp, body := s.do(http.MethodGet, "/students/search", trainer.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var found []users.StudentResponse
	s.decode(body, &found)
	assert.NotEmpty(t, found)

	req := assessments.Request{
		StudentID: student.ID,
		Age:       ptr(30),
		Weight:    ptr(80.0),
		Height:    ptr(1.8),
		Skinfolds: assessments.Skinfolds{
			Chest:       ptr(10.0),
			Triceps:     ptr(12.0),
			Subscapular: ptr(15.0),
			Biceps:      ptr(6.0),
			Midaxillary: ptr(11.0),
			Suprailiac:  ptr(14.0),
		},
		Notes: "primeira avaliação",
	}

	// students cannot assess
	resp, _ = s.do(http.MethodPost, "/assessments", student.Token, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = s.do(http.MethodPost, "/assessments", trainer.Token, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created assessments.Assessment
	s.decode(body, &created)
	assert.Positive(t, created.ID)
	assert.Equal(t, student.ID, created.StudentID)
	assert.Equal(t, trainer.ID, created.ProfessionalID)
	assert.Equal(t, 24.69, created.Result.BMI)
	assert.Positive(t, created.Result.FatPercent)
	assert.InDelta(t, 80.0, created.Result.FatMassKg+created.Result.LeanMassKg, 0.02)

	path := fmt.Sprintf("/assessments/%d", created.ID)

	resp, _ = s.do(http.MethodGet, path, student.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = s.do(http.MethodGet, path, otherStudent.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req.Weight = ptr(78.0)
	resp, body = s.do(http.MethodPut, path, trainer.Token, req)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var updated assessments.Assessment
	s.decode(body, &updated)
	assert.Equal(t, 78.0, updated.Weight)
	assert.Less(t, updated.Result.BMI, created.Result.BMI)

	resp, body = s.do(http.MethodGet, fmt.Sprintf("/assessments/evolution/%d", student.ID), student.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var evolution assessments.Evolution
	s.decode(body, &evolution)
	require.Len(t, evolution.Points, 1)
	assert.Equal(t, created.ID, evolution.Points[0].AssessmentID)

	resp, body = s.do(http.MethodGet, path+"/pdf", student.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))

	resp, _ = s.do(http.MethodDelete, path, trainer.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = s.do(http.MethodGet, path, trainer.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestNutritionFlow() {
	t := s.T()
	nutritionist := s.registerAndLogin(users.RoleNutritionist)
	student := s.registerAndLogin(users.RoleStudent)
	trainer := s.registerAndLogin(users.RoleTrainer)

	req := nutrition.PlanRequest{
		StudentID: student.ID,
		Meals: []nutrition.MealRequest{
			{
				Title:             "Café da manhã",
				EstimatedCalories: 450,
				Foods: []nutrition.FoodRequest{
					{Name: "Aveia", Grams: ptr(40.0)},
					{Name: "Banana", Grams: ptr(120.0)},
					{Name: "", Grams: ptr(10.0)},
				},
			},
			{Title: "Almoço", EstimatedCalories: 700},
		},
	}

	resp, _ := s.do(http.MethodPost, "/nutrition/plans", trainer.Token, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := s.do(http.MethodPost, "/nutrition/plans", nutritionist.Token, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var plan nutrition.Plan
	s.decode(body, &plan)
	require.Len(t, plan.Meals, 2)
	assert.Len(t, plan.Meals[0].Foods, 2)
	assert.Equal(t, student.ID, plan.StudentID)

	resp, body = s.do(http.MethodGet, "/nutrition/plans", student.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summaries []nutrition.PlanSummary
	s.decode(body, &summaries)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1150, summaries[0].TotalCalories)
	assert.Equal(t, "Café da manhã", summaries[0].FirstMealTitle)

	path := fmt.Sprintf("/nutrition/plans/%d", plan.ID)
	req.Meals = req.Meals[1:]
	resp, body = s.do(http.MethodPut, path, nutritionist.Token, req)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	s.decode(body, &plan)
	assert.Len(t, plan.Meals, 1)

	resp, body = s.do(http.MethodGet, path+"/pdf", student.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))

	resp, _ = s.do(http.MethodDelete, path, nutritionist.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = s.do(http.MethodGet, "/nutrition/plans", student.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(body))
}

func (s *IntegrationTestSuite) TestWorkoutsFlow() {
	t := s.T()
	trainer := s.registerAndLogin(users.RoleTrainer)
	student := s.registerAndLogin(users.RoleStudent)

	resp, body := s.do(http.MethodPost, "/exercises", trainer.Token, workouts.ExerciseRequest{
		Name: "Supino reto", MuscleGroup: "Peito",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var exercise workouts.Exercise
	s.decode(body, &exercise)
	assert.Equal(t, "peito", exercise.MuscleGroup)

	resp, body = s.do(http.MethodGet, "/exercises?muscleGroup=PEITO", student.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var exercises []workouts.Exercise
	s.decode(body, &exercises)
	assert.NotEmpty(t, exercises)

	resp, body = s.do(http.MethodPost, "/workouts/plans", trainer.Token, workouts.PlanRequest{
		StudentID: student.ID,
		Workouts: []workouts.WorkoutRequest{
			{Name: "Treino A", Exercises: []workouts.EntryRequest{{ExerciseID: exercise.ID, Sets: 4, Reps: "8-12"}}},
			{Name: "", Exercises: []workouts.EntryRequest{{ExerciseID: exercise.ID, Sets: 3, Reps: "10"}}},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created workouts.PlanCreatedResponse
	s.decode(body, &created)
	require.Len(t, created.WorkoutIDs, 1)

	resp, body = s.do(http.MethodGet, "/workouts/student", student.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var own []workouts.Summary
	s.decode(body, &own)
	require.Len(t, own, 1)
	assert.Equal(t, "Treino A", own[0].Name)

	path := fmt.Sprintf("/workouts/%d", created.WorkoutIDs[0])
	resp, body = s.do(http.MethodGet, path, student.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var workout workouts.Workout
	s.decode(body, &workout)
	require.Len(t, workout.Entries, 1)
	assert.Equal(t, "Supino reto", workout.Entries[0].Name)
	assert.Equal(t, "8-12", workout.Entries[0].Reps)

	resp, body = s.do(http.MethodGet, "/workouts/trainer", trainer.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var grouped []workouts.StudentWorkouts
	s.decode(body, &grouped)
	require.Len(t, grouped, 1)
	assert.Equal(t, student.ID, grouped[0].StudentID)

	// unknown exercise
	resp, _ = s.do(http.MethodPut, path, trainer.Token, workouts.WorkoutRequest{
		Name: "Treino A", Exercises: []workouts.EntryRequest{{ExerciseID: 999999, Sets: 4, Reps: "8"}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(http.MethodDelete, path, trainer.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = s.do(http.MethodGet, path, student.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestAdminLogs() {
	t := s.T()
	admin := s.seedAdmin()
	student := s.registerAndLogin(users.RoleStudent)

	resp, _ := s.do(http.MethodGet, "/admin/logs", student.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := s.do(http.MethodGet, "/admin/logs", admin.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, _ = s.do(http.MethodDelete, "/admin/logs", admin.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
