package pagination

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/ledgercred/credential-service/pkg/server/framework"
	"github.com/ledgercred/credential-service/pkg/service/payload"
)

type PageToken struct {
	EncodedQuery  string
	NextPageToken string
}

const (
	PageSizeParam  = "pageSize"
	PageTokenParam = "pageToken"
)

// ParsePaginationParams reads the PageSizeParam and PageTokenParam from the query string and populates the passed
// in pageRequest. The value encoded in PageTokenParam is assumed to be the base64url encoding of a PageToken. It is
// an error for the query params to be different from the query params encoded in the PageToken. Any error is
// responded to using the passed in gin.Context, and the return value reports whether that happened.
func ParsePaginationParams(c *gin.Context, pageRequest *PageRequest) bool {
	pageSizeStr := framework.GetQueryValue(c, PageSizeParam)

	if pageSizeStr != nil {
		pageSize, err := strconv.Atoi(*pageSizeStr)
		if err != nil {
			errMsg := fmt.Sprintf("list request encountered a problem with the %q query param", PageSizeParam)
			_ = framework.LoggingRespondErrMsg(c, errMsg, http.StatusBadRequest)
			return true
		}
		if pageSize <= 0 {
			errMsg := fmt.Sprintf("'%s' must be greater than 0", PageSizeParam)
			_ = framework.LoggingRespondErrMsg(c, errMsg, http.StatusBadRequest)
			return true
		}
		pageRequest.PageSize = &pageSize
	}

	queryPageToken := framework.GetQueryValue(c, PageTokenParam)
	if queryPageToken != nil {
		errMsg := "token value cannot be decoded"
		tokenData, err := base64.RawURLEncoding.DecodeString(*queryPageToken)
		if err != nil {
			_ = framework.LoggingRespondErrMsg(c, errMsg, http.StatusBadRequest)
			return true
		}
		var pageToken PageToken
		if err = json.Unmarshal(tokenData, &pageToken); err != nil {
			_ = framework.LoggingRespondErrMsg(c, errMsg, http.StatusBadRequest)
			return true
		}
		pageTokenValues, err := url.ParseQuery(pageToken.EncodedQuery)
		if err != nil {
			_ = framework.LoggingRespondErrMsg(c, errMsg, http.StatusBadRequest)
			return true
		}

		query := pageTokenQuery(c)
		if !reflect.DeepEqual(pageTokenValues, query) {
			logrus.Warnf("expected query from token to be equal to query from request. token: %v\nrequest%v", pageTokenValues, query)
			_ = framework.LoggingRespondErrMsg(c, "page token must be for the same query", http.StatusBadRequest)
			return true
		}
		pageRequest.PageToken = &pageToken.NextPageToken
	}
	return false
}

func pageTokenQuery(c *gin.Context) url.Values {
	query := c.Request.URL.Query()
	delete(query, PageTokenParam)
	delete(query, PageSizeParam)
	return query
}

// MaybeSetNextPageToken encodes the serviceNextPageToken and the URL query params into a base64url string. The
// encoded string is assigned to what respNextPageToken is pointing to. respNextPageToken cannot be nil.
func MaybeSetNextPageToken(c *gin.Context, serviceNextPageToken string, respNextPageToken *string) bool {
	if serviceNextPageToken != "" {
		tokenQuery := pageTokenQuery(c)
		pageToken := PageToken{
			EncodedQuery:  tokenQuery.Encode(),
			NextPageToken: serviceNextPageToken,
		}
		nextPageTokenData, err := json.Marshal(pageToken)
		if err != nil {
			_ = framework.LoggingRespondErrWithMsg(c, err, "marshalling page token", http.StatusInternalServerError)
			return true
		}
		*respNextPageToken = base64.RawURLEncoding.EncodeToString(nextPageTokenData)
	}
	return false
}

// PageRequest contains the parameters sent in the request.
type PageRequest struct {
	// PageSize is the value associated with PageSizeParam. A nil value means it was not present in the query. When
	// the parameter is absent, all items in the collection are included in the response.
	PageSize *int `json:"pageSize,omitempty"`

	// PageToken is the value associated with PageTokenParam. A nil value means it was not present in the query.
	PageToken *string `json:"pageToken,omitempty"`
}

func (r *PageRequest) ToServicePage() payload.Page {
	page := payload.Page{
		Size: payload.AllPages,
	}
	if r == nil {
		return page
	}
	if r.PageSize != nil {
		page.Size = *r.PageSize
	}
	if r.PageToken != nil {
		page.Token = *r.PageToken
	}
	return page
}
