package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ===== Error model =====
// 各リソースで個別に持たず、境界のエラー変換はここに一本化する。

type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeValidation      Code = "VALIDATION"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeInternal        Code = "INTERNAL"
)

type Error struct {
	Code    Code
	Message string
	// フィールド名 → 問題点（VALIDATION のときのみ）
	Fields map[string][]string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func ErrInvalid(msg string) *Error      { return &Error{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *Error     { return &Error{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *Error     { return &Error{Code: CodeConflict, Message: msg} }
func ErrUnauthorized(msg string) *Error { return &Error{Code: CodeUnauthorized, Message: msg} }
func ErrInternal(msg string) *Error     { return &Error{Code: CodeInternal, Message: msg} }

func ErrValidation(msg string, fields map[string][]string) *Error {
	return &Error{Code: CodeValidation, Message: msg, Fields: fields}
}

// CONFLICT は 409 ではなく 422。重複子リソース等の業務違反は
// バリデーション失敗と同じ区分で返す（コードで区別できる）。
func ToHTTPStatus(err error) int {
	var api *Error
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return http.StatusBadRequest
		case CodeValidation, CodeConflict:
			return http.StatusUnprocessableEntity
		case CodeNotFound:
			return http.StatusNotFound
		case CodeUnauthorized:
			return http.StatusUnauthorized
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

type errDTO struct {
	Error struct {
		Code    Code                `json:"code"`
		Message string              `json:"message"`
		Fields  map[string][]string `json:"fields,omitempty"`
	} `json:"error"`
}

func errBody(err error) errDTO {
	var d errDTO
	var api *Error
	if errors.As(err, &api) {
		d.Error.Code = api.Code
		d.Error.Message = api.Message
		d.Error.Fields = api.Fields
		return d
	}
	d.Error.Code = CodeInternal
	d.Error.Message = "internal error"
	return d
}

// WriteError はエラーをHTTPステータス＋JSONボディに変換して書き出す。
func WriteError(c *gin.Context, err error) {
	c.JSON(ToHTTPStatus(err), errBody(err))
}
