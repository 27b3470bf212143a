package dao

import (
	"HappyEducation/model"
	"sort"
	"testing"
	"time"
)

func makeContest(format string) *Contest {
	begin := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)
	return &Contest{
		ID:     1,
		Key:    "weekly1",
		Format: format,
		Begin:  begin,
		End:    begin.Add(2 * time.Hour),
		Length: 7200,
	}
}

func TestOIFormatUpdate(t *testing.T) {
	c := makeContest("OI")
	p := &ContestParticipation{ContestID: 1, UserID: 2, Virtual: model.LIVE}
	cps := []ContestProblem{
		{ID: 10, Points: 100},
		{ID: 11, Points: 100},
		{ID: 12, Points: 100},
	}
	judgedAt := c.Begin.Add(30 * time.Minute)
	GetFormat(c.Format).UpdateParticipation(c, p, judgedAt, map[string]uint{"10": 100, "11": 0, "12": 100}, cps)

	if p.Score != 200 {
		t.Fatal("OI总分应为各题得分之和, 得到", p.Score)
	}
	if p.Cumtime != 2*1800 {
		t.Fatal("OI用时应只计有得分的题, 得到", p.Cumtime)
	}
}

func TestACMFormatUpdate(t *testing.T) {
	c := makeContest("ACM")
	p := &ContestParticipation{ContestID: 1, UserID: 2, Virtual: model.LIVE}
	cps := []ContestProblem{
		{ID: 10, Points: 100},
		{ID: 11, Points: 100},
	}
	judgedAt := c.Begin.Add(10 * time.Minute)
	GetFormat(c.Format).UpdateParticipation(c, p, judgedAt, map[string]uint{"10": 100, "11": 40}, cps)

	if p.Score != 1 {
		t.Fatal("ACM只统计完全做对的题数, 得到", p.Score)
	}
	if p.Cumtime != 600 {
		t.Fatal("ACM每道过题计用时, 得到", p.Cumtime)
	}
}

func TestVirtualParticipationElapsed(t *testing.T) {
	c := makeContest("OI")
	start := c.End.Add(24 * time.Hour)
	p := &ContestParticipation{ContestID: 1, UserID: 2, Virtual: 1, RealStart: start}
	cps := []ContestProblem{{ID: 10, Points: 100}}
	GetFormat(c.Format).UpdateParticipation(c, p, start.Add(5*time.Minute), map[string]uint{"10": 100}, cps)

	if p.Cumtime != 300 {
		t.Fatal("虚拟重赛应从加入时刻起算用时, 得到", p.Cumtime)
	}
}

func TestCompetitionRanks(t *testing.T) {
	ps := []ContestParticipation{
		{UserID: 1, Score: 300, Cumtime: 100},
		{UserID: 2, Score: 200, Cumtime: 50},
		{UserID: 3, Score: 200, Cumtime: 50},
		{UserID: 4, Score: 200, Cumtime: 80},
		{UserID: 5, Score: 100, Cumtime: 10, IsDisqualified: true},
	}
	sort.Slice(ps, func(i, j int) bool {
		if rankEqual(&ps[i], &ps[j]) {
			return ps[i].UserID < ps[j].UserID
		}
		return rankLess(&ps[i], &ps[j])
	})
	ranks := CompetitionRanks(ps)
	want := []int{1, 2, 2, 4, 5}
	for i := range want {
		if ranks[i] != want[i] {
			t.Fatal("并列名次计算错误:", ranks, "期望", want)
		}
	}
	if !ps[len(ps)-1].IsDisqualified {
		t.Fatal("取消资格的参与应排在最后")
	}
}

func TestRankOrderKeys(t *testing.T) {
	a := &ContestParticipation{Score: 100, Cumtime: 30, Tiebreaker: 0.5}
	b := &ContestParticipation{Score: 100, Cumtime: 30, Tiebreaker: 0.2}
	if rankLess(a, b) || !rankLess(b, a) {
		t.Fatal("分数和用时都相同时应由tiebreaker决定先后")
	}
	d := &ContestParticipation{Score: 500, IsDisqualified: true}
	e := &ContestParticipation{Score: 1}
	if rankLess(d, e) {
		t.Fatal("取消资格的参与不能排在正常参与之前")
	}
}
