package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/application"
)

// FundraiserInternalServer exposes the service on the internal gRPC port.
// Only the standard health service is served for now; sibling services probe
// it before routing traffic.
type FundraiserInternalServer struct {
	grpc_health_v1.UnimplementedHealthServer
	service *application.Service
}

func NewFundraiserInternalServer(service *application.Service) *FundraiserInternalServer {
	return &FundraiserInternalServer{service: service}
}

func Register(server grpc.ServiceRegistrar, svc *FundraiserInternalServer) {
	grpc_health_v1.RegisterHealthServer(server, svc)
}

func (s *FundraiserInternalServer) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	_ = ctx
	_ = req
	return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_SERVING}, nil
}

func (s *FundraiserInternalServer) Watch(req *grpc_health_v1.HealthCheckRequest, stream grpc_health_v1.Health_WatchServer) error {
	_ = req
	return stream.Send(&grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_SERVING})
}
