package diff

import (
	"bytes"
	"fmt"
	"html/template"
)

// 触发评论的动作，决定渲染时的标题
const (
	ActionResubmit             = "resubmit"
	ActionUpdateWhileCritiqued = "update_while_critiqued"
	ActionUpdateWhileReview    = "update_while_review"
	ActionDefault              = "default"
)

var actionHeaders = map[string]string{
	ActionResubmit:             "Record was resubmitted for review with the following changes:",
	ActionUpdateWhileCritiqued: "Record started being updated, work in progress...",
	ActionUpdateWhileReview:    "Record was updated! Please check the latest changes.",
	ActionDefault:              "Action triggered comment update",
}

const (
	addedMsg   = "Added:"
	changedMsg = "Changed:"
	removedMsg = "Removed:"
)

var commentTemplate = template.Must(template.New("comment").Parse(`<body>
    <h3>{{.Header}}</h3>
{{if .Adds}}
    <h3>{{.AddedMsg}}</h3>
    <ul>
{{range .Adds}}        <li>{{.}}</li>
{{end}}    </ul>
{{end}}{{if .Changes}}
    <h3>{{.ChangedMsg}}</h3>
    <ul>
{{range .Changes}}        <li>{{.}}</li>
{{end}}    </ul>
{{end}}{{if .Removes}}
    <h3>{{.RemovedMsg}}</h3>
    <ul>
{{range .Removes}}        <li>{{.}}</li>
{{end}}    </ul>
{{end}}</body>
`))

// Processor 维护一组差异包装器：映射原始差异、清洗、与前一份评论合并、渲染
type Processor struct {
	elements  []Element
	factories []Factory
}

// NewProcessor 创建处理器，factories 依序决定每条原始差异映射到的包装器类别，
// 未命中时落到通用包装器
func NewProcessor(factories []Factory) *Processor {
	return &Processor{factories: factories}
}

// DefaultFactories 默认的包装器配置
func DefaultFactories() []Factory {
	return []Factory{NewDescriptionElement}
}

// MapEntries 将原始差异逐条映射为配置的包装器
func (p *Processor) MapEntries(entries []Entry) *Processor {
	p.elements = make([]Element, 0, len(entries))
	for _, e := range entries {
		p.elements = append(p.elements, p.mapEntry(e))
	}
	return p
}

func (p *Processor) mapEntry(e Entry) Element {
	for _, f := range p.factories {
		if el := f(e); el.Matches(e) {
			return el
		}
	}
	return NewElement(e)
}

// Elements 当前持有的差异包装器
func (p *Processor) Elements() []Element {
	return p.elements
}

// Empty 是否没有任何差异
func (p *Processor) Empty() bool {
	return len(p.elements) == 0
}

// ValidateAndCleanup 逐条清洗，剔除不合法的差异
func (p *Processor) ValidateAndCleanup() {
	kept := p.elements[:0]
	for _, el := range p.elements {
		if el.ValidateAndCleanup() {
			kept = append(kept, el)
		}
	}
	p.elements = kept
}

// Compare 以 other 为基准合并：抵消被改回的字段、串联 change 的旧值，
// 基准中未被本次更新触及的条目全部保留
func (p *Processor) Compare(other *Processor) *Processor {
	if other == nil {
		return p
	}
	p.ValidateAndCleanup()

	touched := make(map[string]bool)
	kept := make([]Element, 0, len(p.elements))
	for _, el := range p.elements {
		drop := false
		for _, ref := range other.elements {
			result := el.Compare(ref)
			if result == CompareUnrelated {
				continue
			}
			if result == CompareDrop {
				drop = true
			}
			touched[elementKey(ref)] = true
		}
		if !drop {
			kept = append(kept, el)
		}
	}
	for _, ref := range other.elements {
		if !touched[elementKey(ref)] {
			kept = append(kept, p.mapEntry(ref.Entry()))
		}
	}
	p.elements = kept
	return p
}

func elementKey(el Element) string {
	key, err := canonString(el.Entry())
	if err != nil {
		return fmt.Sprintf("%v", el.Entry())
	}
	return key
}

// ToHTML 渲染按新增/变更/删除分组的评论内容，未知动作使用缺省标题
func (p *Processor) ToHTML(action string) (string, error) {
	header, ok := actionHeaders[action]
	if !ok {
		header = actionHeaders[ActionDefault]
	}

	p.ValidateAndCleanup()
	var adds, changes, removes []string
	for _, el := range p.elements {
		switch el.Entry().Op {
		case OpAdd:
			adds = append(adds, el.HTML())
		case OpChange:
			changes = append(changes, el.HTML())
		case OpRemove:
			removes = append(removes, el.HTML())
		}
	}

	var buf bytes.Buffer
	err := commentTemplate.Execute(&buf, map[string]any{
		"Header":     header,
		"Adds":       adds,
		"Changes":    changes,
		"Removes":    removes,
		"AddedMsg":   addedMsg,
		"ChangedMsg": changedMsg,
		"RemovedMsg": removedMsg,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// BaseContentObject 序列化当前差异列表，随评论一同存储，后续合并无需解析 HTML
func (p *Processor) BaseContentObject() (string, error) {
	objects := make([]string, 0, len(p.elements))
	for _, el := range p.elements {
		obj, err := el.BaseContentObject()
		if err != nil {
			return "", err
		}
		objects = append(objects, obj)
	}
	return canonString(objects)
}

// FromBaseContentObject 从存储形式还原一个处理器，包装器类别按当前配置重新映射
func (p *Processor) FromBaseContentObject(stored string) (*Processor, error) {
	var objects []string
	if err := canonJSON.UnmarshalFromString(stored, &objects); err != nil {
		return nil, fmt.Errorf("解析 base content object 失败: %w", err)
	}
	elements := make([]Element, 0, len(objects))
	for _, obj := range objects {
		var e Entry
		if err := canonJSON.UnmarshalFromString(obj, &e); err != nil {
			return nil, fmt.Errorf("解析 base content object 失败: %w", err)
		}
		elements = append(elements, p.mapEntry(e))
	}
	return &Processor{elements: elements, factories: p.factories}, nil
}
