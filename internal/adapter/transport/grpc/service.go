package challengegrpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/dayanaadylkhanova/proof-of-response/internal/entity"
)

const serviceName = "proofofresponse.v1.ChallengeService"

// ChallengeServiceServer is the server-side interface of the service.
type ChallengeServiceServer interface {
	Handshake(context.Context, *entity.Message) (*entity.Message, error)
	Issue(context.Context, *IssueRequest) (*Challenge, error)
	Verify(context.Context, *Answer) (*VerifyResponse, error)
}

func RegisterChallengeServiceServer(s *grpc.Server, srv ChallengeServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

func handlerHandshake(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(entity.Message)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ChallengeServiceServer).Handshake(ctx, req)
}

func handlerIssue(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(IssueRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ChallengeServiceServer).Issue(ctx, req)
}

func handlerVerify(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(Answer)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ChallengeServiceServer).Verify(ctx, req)
}

func fullMethod(method string) string {
	return fmt.Sprintf("/%s/%s", serviceName, method)
}

// serviceDesc is the manual gRPC service descriptor.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ChallengeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Handshake", Handler: handlerHandshake},
		{MethodName: "Issue", Handler: handlerIssue},
		{MethodName: "Verify", Handler: handlerVerify},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "proofofresponse/v1/challenge.cram",
}
