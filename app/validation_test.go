package app

import "testing"

func TestLoginValidtor(t *testing.T) {
	lv := &loginValidtor{Username: "hzcool", Password: "123456"}
	if ok, msg := lv.isOk(); !ok {
		t.Fatal("合法登陆参数不应被拒绝:", msg)
	}
	lv = &loginValidtor{Username: "has space", Password: "123456"}
	if ok, _ := lv.isOk(); ok {
		t.Fatal("用户名含空字符应被拒绝")
	}
	lv = &loginValidtor{Username: "hzcool", Password: "123"}
	if ok, _ := lv.isOk(); ok {
		t.Fatal("过短密码应被拒绝")
	}
}

func TestRegisterValidtor(t *testing.T) {
	rv := &registerValidtor{
		Username: "student1",
		Password: "abcdef123",
		Email:    "student1@example.com",
		School:   "NO.1 middle school",
	}
	if ok, msg := rv.isOk(); !ok {
		t.Fatal("合法注册参数不应被拒绝:", msg)
	}
	rv.Email = "not-an-email"
	if ok, _ := rv.isOk(); ok {
		t.Fatal("非法邮箱应被拒绝")
	}
}

func TestJoinContestValidtor(t *testing.T) {
	jv := &joinContestValidtor{Key: "weekly1", AccessCode: "XYZ"}
	if ok, msg := jv.isOk(); !ok {
		t.Fatal("合法加入参数不应被拒绝:", msg)
	}
	jv = &joinContestValidtor{}
	if ok, _ := jv.isOk(); ok {
		t.Fatal("缺少key应被拒绝")
	}
}
