package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/graceway/shepherd/internal/services/conversation"
	"github.com/stretchr/testify/assert"
)

func TestRecentConversationsWithoutStorage(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations?sessionId=s1", nil)

	HandleRecentConversations(nil, rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRecentConversationsRequiresSessionID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations", nil)

	HandleRecentConversations(&conversation.Service{}, rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecentConversationsRejectsBadLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations?sessionId=s1&limit=zero", nil)

	HandleRecentConversations(&conversation.Service{}, rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
