package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errorvalues "github.com/limbo/exercise-tracker/internal/error_values"
	"github.com/limbo/exercise-tracker/internal/repository"
	"github.com/limbo/exercise-tracker/internal/repository/mocks"
	"github.com/limbo/exercise-tracker/internal/service"
	"github.com/limbo/exercise-tracker/pkg/clock"
	"github.com/limbo/exercise-tracker/pkg/entity"
)

var (
	now   = time.Date(2023, time.June, 10, 15, 30, 0, 0, time.UTC)
	jan15 = time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC).UnixMilli()
	feb01 = time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	jan01 = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	alice = &entity.User{ID: "u-1", Username: "alice"}
)

func newExerciseService(t *testing.T) (*service.ExerciseService, *mocks.MockUsersRepositoryI, *mocks.MockExercisesRepositoryI) {
	ctrl := gomock.NewController(t)
	usersRepo := mocks.NewMockUsersRepositoryI(ctrl)
	exercisesRepo := mocks.NewMockExercisesRepositoryI(ctrl)
	serv := service.NewExerciseService(service.NewUserService(usersRepo), exercisesRepo, clock.NewMock(now))
	return serv, usersRepo, exercisesRepo
}

func TestAddExercise(t *testing.T) {
	t.Parallel()
	serv, usersRepo, exercisesRepo := newExerciseService(t)
	validReq := service.AddExerciseRequest{
		UserID:      alice.ID,
		Description: "running",
		Duration:    "30",
		Date:        "2023-01-15",
	}
	testCases := []struct {
		Desc         string
		Req          service.AddExerciseRequest
		MockPrepFunc func()
		Expected     *entity.ExerciseResponse
		Check        func(t *testing.T, err error)
	}{
		{
			Desc: "success",
			Req:  validReq,
			MockPrepFunc: func() {
				usersRepo.EXPECT().FindByID(gomock.Any(), alice.ID).Return(alice, nil)
				exercisesRepo.EXPECT().Create(gomock.Any(), &entity.Exercise{
					UserID:      alice.ID,
					Description: "running",
					Duration:    30,
					Date:        jan15,
				}).Return(nil)
			},
			Expected: &entity.ExerciseResponse{
				ID:          alice.ID,
				Username:    "alice",
				Description: "running",
				Duration:    30,
				Date:        "2023-01-15",
			},
		},
		{
			Desc: "empty date is now",
			Req: service.AddExerciseRequest{
				UserID:      alice.ID,
				Description: "swimming",
				Duration:    "12.5",
			},
			MockPrepFunc: func() {
				usersRepo.EXPECT().FindByID(gomock.Any(), alice.ID).Return(alice, nil)
				exercisesRepo.EXPECT().Create(gomock.Any(), &entity.Exercise{
					UserID:      alice.ID,
					Description: "swimming",
					Duration:    12.5,
					Date:        now.UnixMilli(),
				}).Return(nil)
			},
			Expected: &entity.ExerciseResponse{
				ID:          alice.ID,
				Username:    "alice",
				Description: "swimming",
				Duration:    12.5,
				Date:        "2023-06-10",
			},
		},
		{
			Desc: "unknown user creates nothing",
			Req:  validReq,
			MockPrepFunc: func() {
				usersRepo.EXPECT().FindByID(gomock.Any(), alice.ID).Return(nil, errorvalues.ErrUserNotFound)
			},
			Check: func(t *testing.T, err error) {
				var nf *errorvalues.NotFoundError
				assert.ErrorAs(t, err, &nf)
			},
		},
		{
			Desc: "user lookup storage error",
			Req:  validReq,
			MockPrepFunc: func() {
				usersRepo.EXPECT().FindByID(gomock.Any(), alice.ID).Return(nil, errors.New("db error"))
			},
			Check: func(t *testing.T, err error) {
				var se *errorvalues.StorageError
				assert.ErrorAs(t, err, &se)
			},
		},
		{
			Desc: "invalid date is rejected",
			Req: service.AddExerciseRequest{
				UserID:      alice.ID,
				Description: "running",
				Duration:    "30",
				Date:        "not a date",
			},
			MockPrepFunc: func() {},
			Check: func(t *testing.T, err error) {
				var ve *errorvalues.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, `Cast to Date failed for value "not a date" at path "date"`, ve.First())
			},
		},
		{
			Desc: "non numeric duration",
			Req: service.AddExerciseRequest{
				UserID:      alice.ID,
				Description: "running",
				Duration:    "half an hour",
			},
			MockPrepFunc: func() {},
			Check: func(t *testing.T, err error) {
				var ve *errorvalues.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, `Cast to Number failed for value "half an hour" at path "duration"`, ve.First())
			},
		},
		{
			Desc:         "missing fields are reported in declaration order",
			Req:          service.AddExerciseRequest{},
			MockPrepFunc: func() {},
			Check: func(t *testing.T, err error) {
				var ve *errorvalues.ValidationError
				require.ErrorAs(t, err, &ve)
				require.Len(t, ve.Fields, 3)
				assert.Equal(t, "Path `userId` is required.", ve.First())
				assert.Equal(t, "description", ve.Fields[1].Field)
				assert.Equal(t, "duration", ve.Fields[2].Field)
			},
		},
		{
			Desc: "storage error on create",
			Req:  validReq,
			MockPrepFunc: func() {
				usersRepo.EXPECT().FindByID(gomock.Any(), alice.ID).Return(alice, nil)
				exercisesRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			Check: func(t *testing.T, err error) {
				var se *errorvalues.StorageError
				assert.ErrorAs(t, err, &se)
			},
		},
	}
	for _, tc := range testCases {
		tc.MockPrepFunc()
		req := tc.Req
		resp, err := serv.AddExercise(context.Background(), &req)
		t.Run(tc.Desc, func(t *testing.T) {
			if tc.Expected != nil {
				require.NoError(t, err)
				assert.Equal(t, tc.Expected, resp)
				return
			}
			assert.Nil(t, resp)
			tc.Check(t, err)
		})
	}
}

func TestGetLog(t *testing.T) {
	t.Parallel()
	serv, usersRepo, exercisesRepo := newExerciseService(t)
	defaultTo := now.AddDate(0, 0, 1).UnixMilli()
	testCases := []struct {
		Desc         string
		Query        service.LogQuery
		MockPrepFunc func()
		Expected     *entity.ExerciseLog
		Check        func(t *testing.T, err error)
	}{
		{
			Desc:  "default bounds",
			Query: service.LogQuery{UserID: alice.ID},
			MockPrepFunc: func() {
				usersRepo.EXPECT().FindByID(gomock.Any(), alice.ID).Return(alice, nil)
				exercisesRepo.EXPECT().Find(gomock.Any(), entity.ExerciseFilter{
					UserID: alice.ID,
					From:   0,
					To:     defaultTo,
				}).Return([]entity.Exercise{
					{ID: "e-1", UserID: alice.ID, Description: "running", Duration: 30, Date: jan15},
				}, nil)
			},
			Expected: &entity.ExerciseLog{
				ID:       alice.ID,
				Username: "alice",
				Count:    1,
				Log:      []entity.LogEntry{{Description: "running", Duration: 30, Date: "2023-01-15"}},
			},
		},
		{
			Desc:  "explicit bounds and limit",
			Query: service.LogQuery{UserID: alice.ID, From: "2023-01-01", To: "2023-02-01", Limit: "1"},
			MockPrepFunc: func() {
				usersRepo.EXPECT().FindByID(gomock.Any(), alice.ID).Return(alice, nil)
				exercisesRepo.EXPECT().Find(gomock.Any(), entity.ExerciseFilter{
					UserID: alice.ID,
					From:   jan01,
					To:     feb01,
					Limit:  1,
				}).Return([]entity.Exercise{
					{ID: "e-1", UserID: alice.ID, Description: "running", Duration: 30, Date: jan15},
				}, nil)
			},
			Expected: &entity.ExerciseLog{
				ID:       alice.ID,
				Username: "alice",
				Count:    1,
				Log:      []entity.LogEntry{{Description: "running", Duration: 30, Date: "2023-01-15"}},
			},
		},
		{
			Desc:  "non numeric limit is unlimited",
			Query: service.LogQuery{UserID: alice.ID, Limit: "lots"},
			MockPrepFunc: func() {
				usersRepo.EXPECT().FindByID(gomock.Any(), alice.ID).Return(alice, nil)
				exercisesRepo.EXPECT().Find(gomock.Any(), entity.ExerciseFilter{
					UserID: alice.ID,
					To:     defaultTo,
				}).Return(nil, nil)
			},
			Expected: &entity.ExerciseLog{
				ID:       alice.ID,
				Username: "alice",
				Count:    0,
				Log:      []entity.LogEntry{},
			},
		},
		{
			Desc:  "unknown user does not query exercises",
			Query: service.LogQuery{UserID: "missing"},
			MockPrepFunc: func() {
				usersRepo.EXPECT().FindByID(gomock.Any(), "missing").Return(nil, errorvalues.ErrUserNotFound)
			},
			Check: func(t *testing.T, err error) {
				var nf *errorvalues.NotFoundError
				assert.ErrorAs(t, err, &nf)
			},
		},
		{
			Desc:         "missing user id",
			Query:        service.LogQuery{},
			MockPrepFunc: func() {},
			Check: func(t *testing.T, err error) {
				var ve *errorvalues.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "Path `userId` is required.", ve.First())
			},
		},
		{
			Desc:         "invalid from",
			Query:        service.LogQuery{UserID: alice.ID, From: "yesterday"},
			MockPrepFunc: func() {},
			Check: func(t *testing.T, err error) {
				var ve *errorvalues.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "from", ve.Fields[0].Field)
			},
		},
		{
			Desc:  "storage error",
			Query: service.LogQuery{UserID: alice.ID},
			MockPrepFunc: func() {
				usersRepo.EXPECT().FindByID(gomock.Any(), alice.ID).Return(alice, nil)
				exercisesRepo.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
			},
			Check: func(t *testing.T, err error) {
				var se *errorvalues.StorageError
				assert.ErrorAs(t, err, &se)
			},
		},
	}
	for _, tc := range testCases {
		tc.MockPrepFunc()
		q := tc.Query
		resp, err := serv.GetLog(context.Background(), &q)
		t.Run(tc.Desc, func(t *testing.T) {
			if tc.Expected != nil {
				require.NoError(t, err)
				assert.Equal(t, tc.Expected, resp)
				return
			}
			assert.Nil(t, resp)
			tc.Check(t, err)
		})
	}
}

func TestExerciseLogWithMemoryStorage(t *testing.T) {
	users := service.NewUserService(repository.NewMemoryUsersRepo())
	exercisesRepo := repository.NewMemoryExercisesRepo()
	serv := service.NewExerciseService(users, exercisesRepo, clock.NewMock(now))
	ctx := context.Background()

	user, err := users.CreateUser(ctx, &service.CreateUserRequest{Username: "alice"})
	require.NoError(t, err)

	t.Run("unknown user creates no exercise", func(t *testing.T) {
		_, err := serv.AddExercise(ctx, &service.AddExerciseRequest{
			UserID: "missing", Description: "running", Duration: "30",
		})
		var nf *errorvalues.NotFoundError
		require.ErrorAs(t, err, &nf)
		stored, err := exercisesRepo.Find(ctx, entity.ExerciseFilter{UserID: "missing", From: 0, To: now.UnixMilli() + 1})
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	for _, date := range []string{"2023-03-01", "2023-01-01", "2023-01-15"} {
		_, err := serv.AddExercise(ctx, &service.AddExerciseRequest{
			UserID: user.ID, Description: "exercise on " + date, Duration: "20", Date: date,
		})
		require.NoError(t, err)
	}

	t.Run("sorted ascending regardless of insertion order", func(t *testing.T) {
		log, err := serv.GetLog(ctx, &service.LogQuery{UserID: user.ID})
		require.NoError(t, err)
		require.Equal(t, 3, log.Count)
		dates := make([]string, 0, len(log.Log))
		for _, e := range log.Log {
			dates = append(dates, e.Date)
		}
		assert.Equal(t, []string{"2023-01-01", "2023-01-15", "2023-03-01"}, dates)
	})
	t.Run("date range", func(t *testing.T) {
		log, err := serv.GetLog(ctx, &service.LogQuery{UserID: user.ID, From: "2023-01-02", To: "2023-02-01"})
		require.NoError(t, err)
		require.Equal(t, 1, log.Count)
		assert.Equal(t, "2023-01-15", log.Log[0].Date)
		assert.Equal(t, user.Username, log.Username)
		assert.Equal(t, user.ID, log.ID)
	})
	t.Run("limit", func(t *testing.T) {
		log, err := serv.GetLog(ctx, &service.LogQuery{UserID: user.ID, Limit: "1"})
		require.NoError(t, err)
		assert.Equal(t, 1, log.Count)
		assert.Len(t, log.Log, 1)
	})
	t.Run("empty date is today", func(t *testing.T) {
		resp, err := serv.AddExercise(ctx, &service.AddExerciseRequest{
			UserID: user.ID, Description: "today", Duration: "5",
		})
		require.NoError(t, err)
		assert.Equal(t, "2023-06-10", resp.Date)
		log, err := serv.GetLog(ctx, &service.LogQuery{UserID: user.ID, From: "2023-06-10"})
		require.NoError(t, err)
		require.Equal(t, 1, log.Count)
		assert.Equal(t, "today", log.Log[0].Description)
	})
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, 0, service.ParseLimit(""))
	assert.Equal(t, 0, service.ParseLimit("abc"))
	assert.Equal(t, 0, service.ParseLimit("-3"))
	assert.Equal(t, 0, service.ParseLimit("0"))
	assert.Equal(t, 2, service.ParseLimit("2"))
	assert.Equal(t, 3, service.ParseLimit(" 3 "))
}
