package engine

import (
	"fmt"

	"axle/pkg/api"
)

// Next 表示路由器對一則決策的判定結果
type Next int

const (
	// NextDispatch 決策帶有工具調用請求，進入派工
	NextDispatch Next = iota
	// NextDone 決策未請求工具，本輪執行結束
	NextDone
)

func (n Next) String() string {
	switch n {
	case NextDispatch:
		return "dispatch"
	case NextDone:
		return "done"
	default:
		return "unknown"
	}
}

// Route 檢視最新決策並判定下一步。純函式、不做 IO、不看 Requests 內容：
// 有請求就派工，沒有就結束。收到非 assistant 訊息代表迴圈有 bug。
func Route(last api.Message) (Next, error) {
	if !last.IsDecision() {
		return NextDone, fmt.Errorf("%w: got role %q", ErrBadDecision, last.Role)
	}
	if last.WantsTools() {
		return NextDispatch, nil
	}
	return NextDone, nil
}
