package rest

import (
	"context"

	"github.com/google/uuid"
	"github.com/vybbi/vybbi_api/internal/model"
	"github.com/vybbi/vybbi_api/util"
	"github.com/vybbi/vybbi_api/util/values"
)

func (api *API) CreateServiceRequestHelper(ctx context.Context, req model.CreateServiceRequestRequest) (model.ServiceRequest, string, string, error) {
	request, err := api.CreateServiceRequestRepo(ctx, req)
	if err != nil {
		return model.ServiceRequest{}, util.StatusFromError(err), "Failed to create service request", err
	}
	return request, values.Created, "Service request created successfully", nil
}

func (api *API) GetServiceRequestHelper(ctx context.Context, requestID uuid.UUID) (model.ServiceRequest, string, string, error) {
	request, err := api.GetServiceRequestRepo(ctx, requestID)
	if err != nil {
		return model.ServiceRequest{}, util.StatusFromError(err), "Failed to fetch service request", err
	}
	return request, values.Success, "Service request fetched successfully", nil
}

func (api *API) ListAnnouncementsHelper(ctx context.Context, params model.AnnouncementsParams) ([]model.ServiceRequest, string, string, error) {
	requests, err := api.ListAnnouncementsRepo(ctx, params)
	if err != nil {
		return nil, util.StatusFromError(err), "Failed to fetch announcements", err
	}
	return requests, values.Success, "Announcements fetched successfully", nil
}
