package grpcauth

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/metadata"
)

// TokenExtractor defines a function that extracts a bearer token from
// incoming gRPC metadata.
type TokenExtractor func(ctx context.Context) (string, error)

// MetadataTokenExtractor extracts the token from the "authorization"
// metadata field. A missing field yields an empty token, not an error; a
// malformed field is an error.
func MetadataTokenExtractor(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", nil
	}

	values := md.Get("authorization")
	if len(values) == 0 {
		return "", nil
	}

	parts := strings.Fields(values[0])
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("authorization metadata format must be Bearer {token}")
	}

	return parts[1], nil
}
