// Package sqlexport drives the managed database export API. The service does
// the actual bacpac work server-side; this package only submits the request
// and reads operation status.
package sqlexport

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/sql/armsql"

	"github.com/Chapsvision-dev/sql-backup-operator/internal/exporter"
)

// Client implements exporter.Client over the ARM SQL databases API.
type Client struct {
	databases *armsql.DatabasesClient
}

func New(subscriptionID string, cred azcore.TokenCredential) (*Client, error) {
	dc, err := armsql.NewDatabasesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("databases client: %w", err)
	}
	return &Client{databases: dc}, nil
}

// SubmitExport starts the export and returns a handle over the long-running
// operation. Credential construction here is purely local; only the service
// round-trip can fail.
func (c *Client) SubmitExport(ctx context.Context, req exporter.Request) (exporter.Operation, error) {
	keyType := armsql.StorageKeyTypeStorageAccessKey
	if req.StorageKeyType == string(armsql.StorageKeyTypeSharedAccessKey) {
		keyType = armsql.StorageKeyTypeSharedAccessKey
	}

	poller, err := c.databases.BeginExport(ctx, req.ResourceGroup, req.Server, req.Database,
		armsql.ExportDatabaseDefinition{
			AdministratorLogin:         to.Ptr(req.AdminLogin),
			AdministratorLoginPassword: to.Ptr(req.AdminPassword),
			StorageKey:                 to.Ptr(req.StorageKey),
			StorageKeyType:             to.Ptr(keyType),
			StorageURI:                 to.Ptr(req.StorageURI),
		}, nil)
	if err != nil {
		return nil, err
	}
	return &operation{poller: poller}, nil
}

// operation adapts the SDK poller: one Status call is one poll round-trip.
type operation struct {
	poller *runtime.Poller[armsql.DatabasesClientExportResponse]
}

func (o *operation) Status(ctx context.Context) (exporter.Status, error) {
	if !o.poller.Done() {
		if _, err := o.poller.Poll(ctx); err != nil {
			return exporter.Status{}, err
		}
	}
	if !o.poller.Done() {
		return exporter.Status{State: exporter.StateInProgress}, nil
	}

	res, err := o.poller.Result(ctx)
	if err != nil {
		// A failed long-running operation surfaces as a Result error; report
		// it as the terminal status, it is not a transport problem.
		return exporter.Status{State: exporter.StateFailed, Message: err.Error()}, nil
	}
	return statusFromResult(res), nil
}

func statusFromResult(res armsql.DatabasesClientExportResponse) exporter.Status {
	st := exporter.Status{State: exporter.StateUnknown}
	if res.Properties == nil {
		return st
	}
	if res.Properties.Status != nil {
		switch *res.Properties.Status {
		case "InProgress", "Pending":
			st.State = exporter.StateInProgress
		case "Succeeded", "Completed":
			st.State = exporter.StateSucceeded
		case "Failed":
			st.State = exporter.StateFailed
		case "Cancelled", "CancelRequested":
			st.State = exporter.StateCancelled
		default:
			st.State = exporter.StateUnknown
		}
	}
	if res.Properties.ErrorMessage != nil {
		st.Message = *res.Properties.ErrorMessage
	}
	return st
}
