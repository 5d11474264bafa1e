package errx

// 这里定义规则引擎统一的错误码。
//
// 约束：
// - 业务类（可恢复）：只影响当前竞争中的一个候选行动，绝不终止对局
// - 系统类（致命）：规则数据或代码缺陷，直接上抛到最外层，不做协商

const (
	// CodeIllegalMove 表示当前选择的行动/地点/资源不合法；候选退出竞争即可。
	CodeIllegalMove Code = "ILLEGAL_MOVE"
	// CodeCancelled 表示分支被竞争胜者或重开按钮取消；是控制流信号，不是故障。
	CodeCancelled Code = "CANCELLED"
	// CodeEmptyResource 表示资源池/市场无法满足需求且没有兜底来源（配置缺陷）。
	CodeEmptyResource Code = "EMPTY_RESOURCE"
	// CodeRepeatedTransition 表示重复翻面/重复计分等一次性状态被触发两次（代码缺陷）。
	CodeRepeatedTransition Code = "REPEATED_TRANSITION"
	// CodeInternal 表示引擎内部不可预期错误（兜底）。
	CodeInternal Code = "INTERNAL_ERROR"
)

// 统一哨兵错误（允许 WithData/WithCause 派生新对象）。
var (
	ErrIllegalMove        = NewBiz(CodeIllegalMove, "当前行动不合法")
	ErrCancelled          = NewBiz(CodeCancelled, "分支已被取消")
	ErrEmptyResource      = NewSys(CodeEmptyResource, "资源不足且无兜底来源")
	ErrRepeatedTransition = NewSys(CodeRepeatedTransition, "一次性状态被重复触发")
	ErrInternal           = NewSys(CodeInternal, "引擎内部错误")
)
