package service

import (
	"rdm/curations/internal/model"
)

// 策展动作
const (
	ActionSubmit   = "submit"
	ActionReview   = "review"
	ActionCritique = "critique"
	ActionResubmit = "resubmit"
	ActionAccept   = "accept"
	ActionDecline  = "decline"
	ActionCancel   = "cancel"
	ActionExpire   = "expire"
)

// ActorClass 动作执行者类别
type ActorClass int

const (
	ActorOwner   ActorClass = iota // 请求创建者或记录所有者
	ActorCurator                   // 策展角色成员
	ActorSystem                    // 内部系统身份
)

// actionRule 动作的状态迁移与执行者要求
type actionRule struct {
	from   []string
	to     string
	actors []ActorClass
}

var actionRules = map[string]actionRule{
	ActionSubmit: {
		from:   []string{model.RequestStatusCreated},
		to:     model.RequestStatusSubmitted,
		actors: []ActorClass{ActorOwner, ActorSystem},
	},
	ActionReview: {
		from:   []string{model.RequestStatusSubmitted, model.RequestStatusResubmitted},
		to:     model.RequestStatusReview,
		actors: []ActorClass{ActorCurator},
	},
	ActionCritique: {
		from:   []string{model.RequestStatusReview},
		to:     model.RequestStatusCritiqued,
		actors: []ActorClass{ActorCurator},
	},
	ActionResubmit: {
		// 已关闭的请求重新进入评审走 resubmit，包括草稿重置后被取消的请求
		from: []string{
			model.RequestStatusCritiqued,
			model.RequestStatusAccepted,
			model.RequestStatusDeclined,
			model.RequestStatusExpired,
			model.RequestStatusCancelled,
		},
		to:     model.RequestStatusResubmitted,
		actors: []ActorClass{ActorOwner, ActorSystem},
	},
	ActionAccept: {
		from:   []string{model.RequestStatusReview, model.RequestStatusResubmitted, model.RequestStatusSubmitted},
		to:     model.RequestStatusAccepted,
		actors: []ActorClass{ActorCurator},
	},
	ActionDecline: {
		from:   []string{model.RequestStatusReview, model.RequestStatusResubmitted, model.RequestStatusSubmitted},
		to:     model.RequestStatusDeclined,
		actors: []ActorClass{ActorCurator},
	},
	ActionCancel: {
		from:   model.OpenStatuses,
		to:     model.RequestStatusCancelled,
		actors: []ActorClass{ActorOwner, ActorSystem},
	},
	ActionExpire: {
		from:   model.OpenStatuses,
		to:     model.RequestStatusExpired,
		actors: []ActorClass{ActorSystem},
	},
}

// Actions 全部动作名
func Actions() []string {
	return []string{
		ActionSubmit,
		ActionReview,
		ActionCritique,
		ActionResubmit,
		ActionAccept,
		ActionDecline,
		ActionCancel,
		ActionExpire,
	}
}

// IsAction 判断是否为已注册的动作
func IsAction(action string) bool {
	_, ok := actionRules[action]
	return ok
}

// NextStatus 校验状态迁移，返回动作执行后的状态
func NextStatus(action, current string) (string, error) {
	rule, ok := actionRules[action]
	if !ok {
		return "", ErrUnknownAction
	}
	for _, from := range rule.from {
		if from == current {
			return rule.to, nil
		}
	}
	return "", ErrInvalidTransition
}

// AllowedActors 动作允许的执行者类别
func AllowedActors(action string) ([]ActorClass, error) {
	rule, ok := actionRules[action]
	if !ok {
		return nil, ErrUnknownAction
	}
	return rule.actors, nil
}
