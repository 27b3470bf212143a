package model

import (
	"testing"
	"time"
)

func makeContest(begin, end time.Time) *Contest {
	return &Contest{
		ID:     1,
		Key:    "c1",
		Title:  "第一次月考",
		Begin:  begin,
		End:    end,
		Length: uint(end.Sub(begin) / time.Second),
	}
}

func TestContestWindow(t *testing.T) {
	now := time.Now()
	c := makeContest(now.Add(-time.Hour), now.Add(time.Hour))
	if !c.Started(now) || c.Ended(now) || !c.CanJoin(now) {
		t.Fatal("进行中的比赛应当可以加入")
	}
	if c.CanJoin(now.Add(2 * time.Hour)) {
		t.Fatal("已结束的比赛不能正式加入")
	}
	if c.CanJoin(now.Add(-2 * time.Hour)) {
		t.Fatal("未开始的比赛不能正式加入")
	}
	if !c.Ended(now.Add(61 * time.Minute)) {
		t.Fatal("超过end即为结束")
	}
}

func TestContestAccessibleBy(t *testing.T) {
	now := time.Now()
	c := makeContest(now, now.Add(time.Hour))
	if !c.AccessibleBy(7, nil, false) {
		t.Fatal("公开比赛任何人可见")
	}
	c.IsPrivate = true
	c.EditorIDs = []int64{3}
	if c.AccessibleBy(7, nil, false) {
		t.Fatal("私有比赛对外不可见")
	}
	if !c.AccessibleBy(3, nil, false) {
		t.Fatal("出题人可见")
	}
	if !c.AccessibleBy(7, nil, true) {
		t.Fatal("超管可见")
	}
	c.IsOrganizationPrivate = true
	c.Organizations = []int64{10, 11}
	if !c.AccessibleBy(7, []int64{11}, false) {
		t.Fatal("组织内成员可见")
	}
	if c.AccessibleBy(7, []int64{12}, false) {
		t.Fatal("组织外成员不可见")
	}
}

func TestContestScoreboardGate(t *testing.T) {
	now := time.Now()
	c := makeContest(now.Add(-time.Hour), now.Add(time.Hour))
	c.EditorIDs = []int64{3}
	if !c.CanSeeFullScoreboard(7, false, now) {
		t.Fatal("未设置隐藏时完整榜对所有人开放")
	}
	c.HideScoreboard = true
	if c.CanSeeFullScoreboard(7, false, now) {
		t.Fatal("进行中且设置隐藏时普通用户看不到完整榜")
	}
	if !c.CanSeeFullScoreboard(3, false, now) || !c.CanSeeFullScoreboard(7, true, now) {
		t.Fatal("出题人和超管不受隐藏限制")
	}
	if !c.CanSeeFullScoreboard(7, false, now.Add(2*time.Hour)) {
		t.Fatal("赛后完整榜对所有人开放")
	}
}

func TestContestBannedAndEditor(t *testing.T) {
	c := &Contest{BannedUsers: []int64{5}, EditorIDs: []int64{2, 3}}
	if !c.IsBanned(5) || c.IsBanned(6) {
		t.Fatal("封禁名单判断错误")
	}
	if !c.IsEditor(2) || c.IsEditor(5) {
		t.Fatal("出题人判断错误")
	}
}

func TestParticipationModes(t *testing.T) {
	p := &ContestParticipation{Virtual: LIVE}
	if !p.IsLive() || p.IsSpectate() || p.IsVirtual() {
		t.Fatal("LIVE判断错误")
	}
	p.Virtual = SPECTATE
	if !p.IsSpectate() || p.IsVirtual() {
		t.Fatal("SPECTATE判断错误")
	}
	p.Virtual = 1
	if !p.IsVirtual() || p.IsLive() {
		t.Fatal("虚拟重赛判断错误")
	}
}

func TestParticipationEndTime(t *testing.T) {
	now := time.Now()
	c := makeContest(now.Add(-2*time.Hour), now.Add(-time.Hour))

	//正式参与跟随比赛本身
	live := &ContestParticipation{Virtual: LIVE, RealStart: c.Begin}
	if !live.Ended(c, now) {
		t.Fatal("比赛结束后LIVE参与即结束")
	}

	//虚拟重赛有自己的窗口
	v := &ContestParticipation{Virtual: 1, RealStart: now.Add(-10 * time.Minute)}
	if v.Ended(c, now) {
		t.Fatal("虚拟重赛在自己的时长内不应结束")
	}
	if !v.Ended(c, now.Add(time.Duration(c.Length)*time.Second)) {
		t.Fatal("虚拟重赛超过一个比赛时长后结束")
	}
}
