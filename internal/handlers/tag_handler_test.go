// internal/handlers/tag_handler_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go_4_study_cards/internal/model"
	"go_4_study_cards/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTagHandler_GetTags(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: タグ一覧を返す", func(t *testing.T) {
		svc := new(mocks.TagService)
		h := NewTagHandler(svc, nil)

		tags := []*model.Tag{
			{TagID: uuid.New(), UserID: userID, Name: "数学", CardCount: 2},
		}
		svc.On("ListTags", mock.Anything, userID).Return(tags, nil).Once()

		rec := httptest.NewRecorder()
		h.GetTags(rec, authedRequest(http.MethodGet, "/api/v1/tags", "", userID))

		assert.Equal(t, http.StatusOK, rec.Code)

		var got []*model.Tag
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "数学", got[0].Name)
		assert.Equal(t, int64(2), got[0].CardCount)
	})
}

func TestTagHandler_GetTag(t *testing.T) {
	userID := uuid.New()
	tagID := uuid.New()

	t.Run("正常系", func(t *testing.T) {
		svc := new(mocks.TagService)
		h := NewTagHandler(svc, nil)

		svc.On("GetTag", mock.Anything, userID, tagID).
			Return(&model.Tag{TagID: tagID, UserID: userID, Name: "数学"}, nil).Once()

		r := withURLParam(authedRequest(http.MethodGet, "/api/v1/tags/"+tagID.String(), "", userID), "tag_id", tagID.String())
		rec := httptest.NewRecorder()
		h.GetTag(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("異常系: 存在しないタグは404", func(t *testing.T) {
		svc := new(mocks.TagService)
		h := NewTagHandler(svc, nil)

		svc.On("GetTag", mock.Anything, userID, tagID).
			Return(nil, model.NewAppError("TAG_NOT_FOUND", "タグが見つかりません。", "", model.ErrNotFound)).Once()

		r := withURLParam(authedRequest(http.MethodGet, "/api/v1/tags/"+tagID.String(), "", userID), "tag_id", tagID.String())
		rec := httptest.NewRecorder()
		h.GetTag(rec, r)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestTagHandler_PostTag(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: 201で作成したタグを返す", func(t *testing.T) {
		svc := new(mocks.TagService)
		h := NewTagHandler(svc, nil)

		created := &model.Tag{TagID: uuid.New(), UserID: userID, Name: "数学", Color: model.DefaultTagColor}
		svc.On("CreateTag", mock.Anything, userID, mock.MatchedBy(func(req *model.PostTagRequest) bool {
			return req.Name == "数学"
		})).Return(created, nil).Once()

		rec := httptest.NewRecorder()
		h.PostTag(rec, authedRequest(http.MethodPost, "/api/v1/tags", `{"name":"数学"}`, userID))

		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("異常系: 重複タグは409", func(t *testing.T) {
		svc := new(mocks.TagService)
		h := NewTagHandler(svc, nil)

		svc.On("CreateTag", mock.Anything, userID, mock.Anything).
			Return(nil, model.NewAppError("DUPLICATE_TAG", "同じ名前のタグが既に存在します。", "name", model.ErrConflict)).Once()

		rec := httptest.NewRecorder()
		h.PostTag(rec, authedRequest(http.MethodPost, "/api/v1/tags", `{"name":"数学"}`, userID))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "DUPLICATE_TAG", decodeErrorCode(t, rec))
	})
}

func TestTagHandler_DeleteTag(t *testing.T) {
	userID := uuid.New()
	tagID := uuid.New()

	t.Run("正常系: 204", func(t *testing.T) {
		svc := new(mocks.TagService)
		h := NewTagHandler(svc, nil)

		svc.On("DeleteTag", mock.Anything, userID, tagID).Return(nil).Once()

		r := withURLParam(authedRequest(http.MethodDelete, "/api/v1/tags/"+tagID.String(), "", userID), "tag_id", tagID.String())
		rec := httptest.NewRecorder()
		h.DeleteTag(rec, r)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("異常系: 使用中のタグは409", func(t *testing.T) {
		svc := new(mocks.TagService)
		h := NewTagHandler(svc, nil)

		svc.On("DeleteTag", mock.Anything, userID, tagID).
			Return(model.NewAppError("TAG_IN_USE", "このタグはカードで使用されているため削除できません。", "", model.ErrConflict)).Once()

		r := withURLParam(authedRequest(http.MethodDelete, "/api/v1/tags/"+tagID.String(), "", userID), "tag_id", tagID.String())
		rec := httptest.NewRecorder()
		h.DeleteTag(rec, r)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "TAG_IN_USE", decodeErrorCode(t, rec))
	})

	t.Run("異常系: UUIDでないIDは400", func(t *testing.T) {
		svc := new(mocks.TagService)
		h := NewTagHandler(svc, nil)

		r := withURLParam(authedRequest(http.MethodDelete, "/api/v1/tags/xyz", "", userID), "tag_id", "xyz")
		rec := httptest.NewRecorder()
		h.DeleteTag(rec, r)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "DeleteTag")
	})
}
