package service

import "errors"

// 业务错误，调用方用 errors.Is 区分处理
var (
	ErrRecordNotFound             = errors.New("记录不存在")
	ErrRequestNotFound            = errors.New("策展请求不存在")
	ErrOpenRequestExists          = errors.New("该记录已有进行中的策展请求")
	ErrCurationRequestMissing     = errors.New("缺少策展请求，无法发布")
	ErrCurationRequestNotAccepted = errors.New("策展请求尚未通过，无法发布")
	ErrUnknownAction              = errors.New("未知的策展动作")
	ErrInvalidTransition          = errors.New("当前状态不允许执行该动作")
	ErrActionPermissionDenied     = errors.New("没有执行该动作的权限")
	ErrRequestDeleteGuarded       = errors.New("已发布记录的策展请求不允许删除")
	ErrEventNotFound              = errors.New("时间线条目不存在")
	ErrNotificationNotFound       = errors.New("通知不存在")
	ErrNotComment                 = errors.New("仅评论可以被修改")
	ErrCommentRevisionConflict    = errors.New("评论已被他人修改，请刷新后重试")
	ErrEmptyCommentContent        = errors.New("评论内容不能为空")
)

// Warning 保存成功但需要反馈给用户的提示，不影响保存结果
type Warning struct {
	Field    string   `json:"field"`
	Messages []string `json:"messages"`
}

// WarningField 策展相关提示统一挂在该字段下
const WarningField = "curation"

var (
	warnMissingRequest = Warning{
		Field:    WarningField,
		Messages: []string{"Missing curation request. Please create a curation request, if the record is ready to be published."},
	}
	warnCommentFailed = Warning{
		Field:    WarningField,
		Messages: []string{"Record saved successfully, but failed to update request comment."},
	}
)
