package service

import (
	"rdm/curations/internal/diff"
	"rdm/curations/internal/model"
)

// timelineStore 评论流程需要的时间线读写能力
type timelineStore interface {
	AllEvents(requestID uint) ([]model.RequestEvent, error)
	CreateSystemComment(requestID uint, content, baseContentObject string) error
	UpdateSystemComment(eventID uint, revision int, content, baseContentObject string) error
}

// CommentProcessor 草稿保存时维护请求时间线上的系统差异评论
// 评论失败只产生提示，不影响草稿保存
type CommentProcessor struct {
	events timelineStore
	diff   *diff.Processor
}

// NewCommentProcessor 创建评论处理器
func NewCommentProcessor(events timelineStore, diffProcessor *diff.Processor) *CommentProcessor {
	return &CommentProcessor{events: events, diff: diffProcessor}
}

// Process 按请求状态维护系统评论
// resubmitted: 上一轮无中间保存时新建评论，否则并入已有系统评论；
// critiqued: 时间线末尾是日志则新建，是系统评论则并入，是用户评论则不动；
// review: 每次保存都新建评论。
func (p *CommentProcessor) Process(request *model.CurationRequest) *Warning {
	if request == nil || !request.IsOpen {
		return commentFailedWarning()
	}

	switch request.Status {
	case model.RequestStatusResubmitted:
		return p.processResubmitted(request)
	case model.RequestStatusCritiqued:
		if !p.diff.Empty() {
			return p.processCritiqued(request)
		}
	case model.RequestStatusReview:
		return p.createComment(request, diff.ActionUpdateWhileReview)
	}
	return nil
}

func (p *CommentProcessor) processResubmitted(request *model.CurationRequest) *Warning {
	events, err := p.events.AllEvents(request.ID)
	if err != nil {
		return commentFailedWarning()
	}

	var lastLog string
	var lastSystemComment *model.RequestEvent
	for i := range events {
		event := &events[i]
		if event.IsSystemComment() {
			lastSystemComment = event
			continue
		}
		if event.Type == model.EventTypeLog {
			lastLog = event.LoggedAction()
		}
	}

	// 上一轮批评后直接重新提交，期间没有产生过系统评论
	happyPath := (lastLog == model.RequestStatusResubmitted || lastLog == model.RequestStatusCritiqued) &&
		lastSystemComment == nil
	if happyPath {
		return p.createComment(request, diff.ActionResubmit)
	}

	// 批评与重新提交之间有过草稿保存，把差异并入已有评论，
	// 呈现批评点与当前内容之间的净变化
	return p.mergeComment(lastSystemComment, diff.ActionResubmit)
}

func (p *CommentProcessor) processCritiqued(request *model.CurationRequest) *Warning {
	events, err := p.events.AllEvents(request.ID)
	if err != nil || len(events) == 0 {
		return commentFailedWarning()
	}

	last := &events[len(events)-1]
	switch {
	case last.Type == model.EventTypeLog:
		return p.createComment(request, diff.ActionUpdateWhileCritiqued)
	case last.IsSystemComment():
		return p.mergeComment(last, diff.ActionUpdateWhileCritiqued)
	default:
		// 用户评论在末尾，不打扰讨论
		return nil
	}
}

func (p *CommentProcessor) createComment(request *model.CurationRequest, action string) *Warning {
	content, err := p.diff.ToHTML(action)
	if err != nil {
		return commentFailedWarning()
	}
	stored, err := p.diff.BaseContentObject()
	if err != nil {
		return commentFailedWarning()
	}

	if err := p.events.CreateSystemComment(request.ID, content, stored); err != nil {
		return commentFailedWarning()
	}
	return nil
}

func (p *CommentProcessor) mergeComment(comment *model.RequestEvent, action string) *Warning {
	if comment == nil {
		return commentFailedWarning()
	}

	storedObject, _ := comment.Payload[PayloadKeyBaseContentObject].(string)
	previous, err := p.diff.FromBaseContentObject(storedObject)
	if err != nil {
		return commentFailedWarning()
	}

	merged := p.diff.Compare(previous)
	content, err := merged.ToHTML(action)
	if err != nil {
		return commentFailedWarning()
	}
	stored, err := merged.BaseContentObject()
	if err != nil {
		return commentFailedWarning()
	}

	if err := p.events.UpdateSystemComment(comment.ID, comment.Revision, content, stored); err != nil {
		return commentFailedWarning()
	}
	return nil
}

func commentFailedWarning() *Warning {
	w := warnCommentFailed
	return &w
}
