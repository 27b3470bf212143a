package common

import (
	"testing"
)

func TestShuffledOrderDeterministic(t *testing.T) {
	a := ShuffledOrder(6, 12345)
	b := ShuffledOrder(6, 12345)
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("同一个种子必须给出同一个排列")
		}
	}
	seen := make(map[int]bool)
	for _, v := range a {
		if v < 0 || v >= 6 || seen[v] {
			t.Fatal("结果必须是0..n-1的排列")
		}
		seen[v] = true
	}
}

func TestShuffledOrderVariesBySeed(t *testing.T) {
	//不同种子给出不同排列(对足够长的序列基本必然)
	a := ShuffledOrder(26, 1)
	b := ShuffledOrder(26, 2)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("不同种子不应给出同一个排列")
	}
}

func TestLabels(t *testing.T) {
	if LabelOf(0) != "A" || LabelOf(3) != "D" {
		t.Fatal("标号错误")
	}
	if IndexOfLabel("C") != 2 {
		t.Fatal("标号反解错误")
	}
	if IndexOfLabel("") != -1 || IndexOfLabel("AB") != -1 || IndexOfLabel("a") != -1 {
		t.Fatal("非法标号应返回-1")
	}
}

func TestNormalizeFillAnswer(t *testing.T) {
	if NormalizeFillAnswer("  Hello   World \n") != "hello world" {
		t.Fatal("归一化错误")
	}
	if !SameFillAnswer("42", " 42 ") {
		t.Fatal("首尾空白不应影响判定")
	}
	if !SameFillAnswer("Beijing", "beijing") {
		t.Fatal("大小写不应影响判定")
	}
	if SameFillAnswer("42", "43") {
		t.Fatal("不同答案不应判对")
	}
}
