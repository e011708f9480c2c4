package service

import (
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/squadhelp/internal/domain"
	"github.com/GlebRadaev/squadhelp/internal/pg"
	"github.com/GlebRadaev/squadhelp/internal/repo"
	"github.com/GlebRadaev/squadhelp/internal/service/authservice"
	"github.com/GlebRadaev/squadhelp/internal/service/paymentservice"
	"github.com/GlebRadaev/squadhelp/internal/service/ratingservice"
	"github.com/GlebRadaev/squadhelp/internal/service/userservice"
	pkgauth "github.com/GlebRadaev/squadhelp/pkg/auth"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockDB.Close()

	repos := repo.New(mockDB, pg.NewMockTXManager(ctrl))
	deps := Deps{
		JWTService: pkgauth.NewMockJWTServiceInterface(ctrl),
		TokenTTL:   time.Hour,
		Reserve:    domain.Card{Number: "4564654564564564", CVC: "453", Expiry: "11/26"},
		Publisher:  ratingservice.NewMockPublisher(ctrl),
		Files:      userservice.NewMockFileStore(ctrl),
	}

	services := New(repos, pg.NewMockTXManager(ctrl), deps)

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.UserService)
	assert.NotNil(t, services.PaymentService)
	assert.NotNil(t, services.RatingService)

	assert.IsType(t, &authservice.Service{}, services.AuthService)
	assert.IsType(t, &userservice.Service{}, services.UserService)
	assert.IsType(t, &paymentservice.Service{}, services.PaymentService)
	assert.IsType(t, &ratingservice.Service{}, services.RatingService)
}
