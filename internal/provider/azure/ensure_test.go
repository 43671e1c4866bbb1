package azure

import (
	"context"
	"errors"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

func codedErr(code bloberror.Code) error {
	return &azcore.ResponseError{ErrorCode: string(code), StatusCode: 404}
}

func TestEnsureContainer_ExistsIsNoOp(t *testing.T) {
	creates := 0
	err := ensureContainer(context.Background(), "backups",
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { creates++; return nil },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creates != 0 {
		t.Fatalf("creates = %d, want 0 for an existing container", creates)
	}
}

func TestEnsureContainer_MissingCreatesOnce(t *testing.T) {
	creates := 0
	err := ensureContainer(context.Background(), "backups",
		func(ctx context.Context) error { return codedErr(bloberror.ContainerNotFound) },
		func(ctx context.Context) error { creates++; return nil },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creates != 1 {
		t.Fatalf("creates = %d, want exactly 1", creates)
	}
}

func TestEnsureContainer_CreationRaceTolerated(t *testing.T) {
	err := ensureContainer(context.Background(), "backups",
		func(ctx context.Context) error { return codedErr(bloberror.ContainerNotFound) },
		func(ctx context.Context) error { return codedErr(bloberror.ContainerAlreadyExists) },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnsureContainer_OtherCheckErrorFatal(t *testing.T) {
	boom := errors.New("authorization failure")
	creates := 0
	err := ensureContainer(context.Background(), "backups",
		func(ctx context.Context) error { return boom },
		func(ctx context.Context) error { creates++; return nil },
	)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped check error", err)
	}
	if creates != 0 {
		t.Fatalf("creates = %d, want 0 when the check fails for other reasons", creates)
	}
}

func TestEnsureContainer_CreateErrorFatal(t *testing.T) {
	err := ensureContainer(context.Background(), "bad--name",
		func(ctx context.Context) error { return codedErr(bloberror.ContainerNotFound) },
		func(ctx context.Context) error { return codedErr(bloberror.InvalidResourceName) },
	)
	if err == nil {
		t.Fatal("expected creation error to propagate")
	}
}
