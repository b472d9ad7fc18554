package order

import (
	"github.com/google/uuid"
)

// IDGenerator 订单号生成器
type IDGenerator func() string

// GenerateOrderID 生成订单号
// 教学要点:订单号只要求全局唯一,这里用随机UUID(v4),
// 碰撞概率可以忽略;OrderBook 写入前仍会检查一次重复
func GenerateOrderID() string {
	return uuid.NewString()
}
