package helper

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"musicweb-api/logging"
	"musicweb-api/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"
)

const (
	textError = `error`
	textOk    = `ok`

	msgInternal     = "Internal server error"
	msgUnauthorized = "Unauthorized"
	msgForbidden    = "Forbidden: insufficient permissions"
)

// Pagination headers written by list endpoints.
const (
	HeaderTotalCount  = "X-Total-Count"
	HeaderTotalPages  = "X-Total-Pages"
	HeaderCurrentPage = "X-Current-Page"
	HeaderPerPage     = "X-Per-Page"
)

var PaginationHeaders = []string{HeaderTotalCount, HeaderTotalPages, HeaderCurrentPage, HeaderPerPage, "Link"}

// ResponseHelper ...
type ResponseHelper struct {
	C        *gin.Context
	Status   string
	Message  interface{}
	Data     interface{}
	Code     int
	CodeType string
}

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

// NewHTTPHelper builds a validator that reports fields by their JSON names with English messages.
func NewHTTPHelper() *HTTPHelper {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = en_translations.RegisterDefaultTranslations(validate, trans)

	return &HTTPHelper{Validate: validate, Translator: trans}
}

// GetStatusCode ...
func (u *HTTPHelper) GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		validation   models.ErrorValidation
		unauthorized models.ErrorUnauthorized
		forbidden    models.ErrorForbidden
		notFound     models.ErrorNotFound
		conflict     models.ErrorConflict
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func codeType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "badRequest"
	case http.StatusUnauthorized:
		return "unAuthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "notFound"
	case http.StatusConflict:
		return "conflict"
	case http.StatusTooManyRequests:
		return "tooManyRequests"
	case http.StatusServiceUnavailable:
		return "serviceUnavailable"
	case http.StatusInternalServerError:
		return "internalServerError"
	default:
		return "success"
	}
}

// SetResponse ...
func (u *HTTPHelper) SetResponse(c *gin.Context, status string, message interface{}, data interface{}, code int, codeType string) ResponseHelper {
	return ResponseHelper{c, status, message, data, code, codeType}
}

// SendError writes the error envelope with code as the HTTP status.
func (u *HTTPHelper) SendError(c *gin.Context, message interface{}, data interface{}, code int) {
	if data == nil {
		data = u.EmptyJsonMap()
	}
	u.SendResponse(u.SetResponse(c, textError, message, data, code, codeType(code)))
}

// SendErrorFromErr maps err to its status. Internal errors are logged and never leaked.
func (u *HTTPHelper) SendErrorFromErr(c *gin.Context, err error) {
	status := u.GetStatusCode(err)
	if status == http.StatusInternalServerError {
		logging.Ctx(c.Request.Context()).Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		u.SendError(c, msgInternal, nil, status)
		return
	}

	var validation models.ErrorValidation
	if errors.As(err, &validation) && len(validation.Fields) > 0 {
		u.SendError(c, validation.Message, validation.Fields, status)
		return
	}
	u.SendError(c, err.Error(), nil, status)
}

// SendBadRequest ...
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string, data interface{}) {
	u.SendError(c, message, data, http.StatusBadRequest)
}

// SendValidationError ...
// Send validation error response to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	errorResponse := map[string][]string{}
	errorTranslation := validationErrors.Translate(u.Translator)
	for _, err := range validationErrors {
		errKey := err.Field()
		errorResponse[errKey] = append(errorResponse[errKey], errorTranslation[err.Namespace()])
	}

	u.SendError(c, "Validation failed", errorResponse, http.StatusBadRequest)
}

// SendUnauthorizedError ...
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context) {
	u.SendError(c, msgUnauthorized, nil, http.StatusUnauthorized)
}

func (u *HTTPHelper) SendForbiddenError(c *gin.Context, message string) {
	if message == "" {
		message = msgForbidden
	}
	u.SendError(c, message, nil, http.StatusForbidden)
}

// SendNotFoundError ...
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string) {
	u.SendError(c, message, nil, http.StatusNotFound)
}

func (u *HTTPHelper) SendInternalError(c *gin.Context) {
	u.SendError(c, msgInternal, nil, http.StatusInternalServerError)
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) {
	u.SendResponse(u.SetResponse(c, textOk, message, data, http.StatusOK, `success`))
}

// SendResponse ...
func (u *HTTPHelper) SendResponse(res ResponseHelper) {
	if s, ok := res.Message.(string); ok && s == "" {
		res.Message = `success`
	}

	res.C.JSON(res.Code, map[string]interface{}{
		"code":         res.Code,
		"code_type":    res.CodeType,
		"code_message": res.Message,
		"data":         res.Data,
	})
}

// SendJSON writes a bare resource body.
func (u *HTTPHelper) SendJSON(c *gin.Context, status int, body interface{}) {
	c.JSON(status, body)
}

func (u *HTTPHelper) SendCreated(c *gin.Context, body interface{}) {
	c.JSON(http.StatusCreated, body)
}

func (u *HTTPHelper) SendMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, models.MessageResponse{Message: message})
}

func (u *HTTPHelper) EmptyJsonMap() map[string]interface{} {
	return make(map[string]interface{})
}

// BindJSON decodes and validates the request body into req.
// It writes a 400 response and returns false when either step fails.
func (u *HTTPHelper) BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		u.SendBadRequest(c, "Invalid request body", map[string]string{"body": err.Error()})
		return false
	}
	if err := u.Validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			u.SendValidationError(c, validationErrors)
			return false
		}
		u.SendBadRequest(c, "Invalid request body", nil)
		return false
	}
	return true
}

// get pagination URL
func (u *HTTPHelper) GetPagingUrl(c *gin.Context, page, limit int) string {
	r := c.Request
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	query := r.URL.Query()
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	return scheme + "://" + r.Host + r.URL.Path + "?" + query.Encode()
}

// SetPaginationHeaders reports the list window as response metadata, including an RFC 8288 Link header.
func (u *HTTPHelper) SetPaginationHeaders(c *gin.Context, page, limit int, totalRecord int64) {
	totalPages := models.TotalPages(totalRecord, limit)

	c.Header(HeaderTotalCount, strconv.FormatInt(totalRecord, 10))
	c.Header(HeaderTotalPages, strconv.Itoa(totalPages))
	c.Header(HeaderCurrentPage, strconv.Itoa(page))
	c.Header(HeaderPerPage, strconv.Itoa(limit))

	links := make([]string, 0, 4)
	if page > 1 {
		links = append(links, `<`+u.GetPagingUrl(c, 1, limit)+`>; rel="first"`)
		prev := page - 1
		if totalPages > 0 && prev > totalPages {
			prev = totalPages
		}
		links = append(links, `<`+u.GetPagingUrl(c, prev, limit)+`>; rel="prev"`)
	}
	if page < totalPages {
		links = append(links, `<`+u.GetPagingUrl(c, page+1, limit)+`>; rel="next"`)
		links = append(links, `<`+u.GetPagingUrl(c, totalPages, limit)+`>; rel="last"`)
	}
	if len(links) > 0 {
		c.Header("Link", strings.Join(links, ", "))
	}
}
