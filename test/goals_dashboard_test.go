//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/fittrack/internal/dashboard"
	"github.com/2beens/fittrack/internal/goals"
	"github.com/2beens/fittrack/internal/meals"
	"github.com/2beens/fittrack/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) getGoals(ctx context.Context, token string) *goals.UserGoals {
	t := s.T()
	status, body := s.doRequest(ctx, http.MethodGet, "/goals", token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var resp goals.GetResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Goals
}

func (s *IntegrationTestSuite) goalsRecords(userID string) int {
	var count int
	require.NoError(s.T(), s.DB.QueryRow(`SELECT COUNT(*) FROM user_goals WHERE user_id = $1`, userID).Scan(&count))
	return count
}

func (s *IntegrationTestSuite) TestGoals() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := s.newUser(ctx)
	assert.Nil(t, s.getGoals(ctx, user.Token))

	zero := 0
	status, _ := s.doRequest(ctx, http.MethodPut, "/goals/weekly", user.Token, goals.SetWeeklyGoalRequest{WeeklyActivityGoal: &zero})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Zero(t, s.goalsRecords(user.ID))

	three, six := 3, 6
	status, body := s.doRequest(ctx, http.MethodPut, "/goals/weekly", user.Token, goals.SetWeeklyGoalRequest{WeeklyActivityGoal: &three})
	require.Equal(t, http.StatusOK, status, string(body))
	first := s.getGoals(ctx, user.Token)
	require.NotNil(t, first)
	assert.Equal(t, 3, first.WeeklyActivityGoal)

	status, _ = s.doRequest(ctx, http.MethodPut, "/goals/weekly", user.Token, goals.SetWeeklyGoalRequest{WeeklyActivityGoal: &six})
	require.Equal(t, http.StatusOK, status)
	second := s.getGoals(ctx, user.Token)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 6, second.WeeklyActivityGoal)
	assert.Equal(t, 1, s.goalsRecords(user.ID))

	calories := 2400.0
	status, _ = s.doRequest(ctx, http.MethodPut, "/goals", user.Token, goals.Patch{CalorieGoal: &calories})
	require.Equal(t, http.StatusOK, status)
	third := s.getGoals(ctx, user.Token)
	assert.Equal(t, 6, third.WeeklyActivityGoal)
	require.NotNil(t, third.CalorieGoal)
	assert.Equal(t, 2400.0, *third.CalorieGoal)
	assert.Nil(t, third.WeightGoal)

	// full goals on a fresh user default the weekly goal
	other := s.newUser(ctx)
	weight := 72.5
	status, _ = s.doRequest(ctx, http.MethodPut, "/goals", other.Token, goals.Patch{WeightGoal: &weight})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, goals.DefaultWeeklyActivityGoal, s.getGoals(ctx, other.Token).WeeklyActivityGoal)
}

func (s *IntegrationTestSuite) TestDashboard() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := s.newUser(ctx)

	status, body := s.doRequest(ctx, http.MethodGet, "/dashboard?date=2024-03-10", user.Token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var m dashboard.Metrics
	require.NoError(t, json.Unmarshal(body, &m))
	assert.Equal(t, "0/7", m.WeeklyProgress)
	assert.Equal(t, goals.DefaultWeeklyActivityGoal, m.WeeklyGoal)
	assert.Zero(t, m.Streak)

	s.createdID(s.doRequest(ctx, http.MethodPost, "/workouts", user.Token, workouts.CreateRequest{
		Name:      "morning",
		Date:      "2024-03-10",
		Completed: true,
		Exercises: []workouts.Exercise{{Name: "squats", Sets: 3, Reps: 10, Weight: 0, Completed: true}},
	}))
	s.createdID(s.doRequest(ctx, http.MethodPost, "/meals", user.Token, meals.CreateRequest{
		Name: "eggs", Type: "breakfast", Calories: 300, Protein: 20, Carbs: 2, Fat: 22, Date: "2024-03-09",
	}))
	two := 2
	status, _ = s.doRequest(ctx, http.MethodPut, "/goals/weekly", user.Token, goals.SetWeeklyGoalRequest{WeeklyActivityGoal: &two})
	require.Equal(t, http.StatusOK, status)

	status, body = s.doRequest(ctx, http.MethodGet, "/dashboard?date=2024-03-10", user.Token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	require.NoError(t, json.Unmarshal(body, &m))
	assert.Equal(t, 1, m.TodayCompletedWorkouts)
	assert.Equal(t, "2/7", m.WeeklyProgress)
	assert.True(t, m.WeeklyGoalMet)
	assert.Equal(t, 60, m.WeeklyCaloriesBurned)
	assert.Equal(t, 2, m.Streak)

	status, _ = s.doRequest(ctx, http.MethodGet, "/dashboard?date=yesterday", user.Token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
