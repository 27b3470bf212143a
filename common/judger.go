package common

import (
	"math/rand"
	"strings"
)

//选项乱序: 同一份答卷内置乱必须可复现, 种子在创建答卷时固定,
//展示和评判用同一个种子推出同一个排列, 不同答卷之间排列各不相同
func ShuffledOrder(n int, seed int64) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(n, func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

//打乱后按位置标号 A,B,C,...
func LabelOf(idx int) string {
	return string([]byte{byte('A' + idx)})
}

func IndexOfLabel(label string) int {
	if len(label) != 1 || label[0] < 'A' || label[0] > 'Z' {
		return -1
	}
	return int(label[0] - 'A')
}

//填空题归一化: 去首尾空白, 压缩连续空格, 不区分大小写
func NormalizeFillAnswer(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func SameFillAnswer(a, b string) bool {
	return NormalizeFillAnswer(a) == NormalizeFillAnswer(b)
}
