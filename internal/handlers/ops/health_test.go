package ops_test

import (
	"context"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	pokeapimock "github.com/KirkDiggler/pokedex-web/internal/clients/pokeapi/mock"
	"github.com/KirkDiggler/pokedex-web/internal/errors"
	"github.com/KirkDiggler/pokedex-web/internal/handlers/ops"
)

type WatcherTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockClient *pokeapimock.MockClient
	health     *health.Server
	watcher    *ops.Watcher
	ctx        context.Context
}

func TestWatcherSuite(t *testing.T) {
	suite.Run(t, new(WatcherTestSuite))
}

func (s *WatcherTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockClient = pokeapimock.NewMockClient(s.ctrl)
	s.health = health.NewServer()
	s.ctx = context.Background()

	w, err := ops.NewWatcher(&ops.Config{
		Client:   s.mockClient,
		Health:   s.health,
		Interval: 10 * time.Millisecond,
	})
	s.Require().NoError(err)
	s.watcher = w
}

func (s *WatcherTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *WatcherTestSuite) status(service string) grpc_health_v1.HealthCheckResponse_ServingStatus {
	resp, err := s.health.Check(s.ctx, &grpc_health_v1.HealthCheckRequest{Service: service})
	s.Require().NoError(err)
	return resp.Status
}

func (s *WatcherTestSuite) TestValidate() {
	_, err := ops.NewWatcher(&ops.Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "Client")
	s.Contains(err.Error(), "Health")
}

func (s *WatcherTestSuite) TestCheckServing() {
	s.mockClient.EXPECT().Ping(gomock.Any()).Return(nil)

	s.Equal(grpc_health_v1.HealthCheckResponse_SERVING, s.watcher.Check(s.ctx))
	s.Equal(grpc_health_v1.HealthCheckResponse_SERVING, s.status(""))
	s.Equal(grpc_health_v1.HealthCheckResponse_SERVING, s.status(ops.GatewayService))
}

func (s *WatcherTestSuite) TestCheckNotServing() {
	s.mockClient.EXPECT().Ping(gomock.Any()).Return(errors.Network("dial tcp: connection refused"))

	s.Equal(grpc_health_v1.HealthCheckResponse_NOT_SERVING, s.watcher.Check(s.ctx))
	s.Equal(grpc_health_v1.HealthCheckResponse_NOT_SERVING, s.status(ops.GatewayService))
}

func (s *WatcherTestSuite) TestRunRecovers() {
	gomock.InOrder(
		s.mockClient.EXPECT().Ping(gomock.Any()).Return(errors.Network("down")),
		s.mockClient.EXPECT().Ping(gomock.Any()).Return(nil).AnyTimes(),
	)

	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.watcher.Run(ctx)
	}()

	s.Eventually(func() bool {
		return s.status(ops.GatewayService) == grpc_health_v1.HealthCheckResponse_SERVING
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func (s *WatcherTestSuite) TestServerAnswersHealthChecks() {
	s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	lis := bufconn.Listen(1 << 16)
	srv := ops.NewServer(slog.Default(), s.health)
	go func() { _ = srv.Serve(lis) }()
	defer srv.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithTimeout(s.ctx, time.Second)
	defer cancel()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	s.Require().NoError(err)
	s.Equal(grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)
}
