package dao

import (
	"HappyEducation/common"
	"strconv"
	"time"
)

//赛制只影响成绩的算法和展示, 不影响评判本身
type ContestFormat interface {
	Name() string
	//根据每题得分回写参与记录的score/cumtime/problem_status
	UpdateParticipation(c *Contest, p *ContestParticipation, judgedAt time.Time, earned map[string]uint, cps []ContestProblem)
	DisplayUserProblem(p *ContestParticipation, cp *ContestProblem) common.H
	DisplayParticipationResult(p *ContestParticipation) common.H
}

func GetFormat(name string) ContestFormat {
	if name == "ACM" {
		return acmFormat{}
	}
	return oiFormat{}
}

//参与计时起点: 虚拟重赛从加入时刻起算, 其余跟随比赛
func participationStart(c *Contest, p *ContestParticipation) time.Time {
	if p.IsVirtual() {
		return p.RealStart
	}
	return c.Begin
}

func elapsedSeconds(c *Contest, p *ContestParticipation, judgedAt time.Time) uint {
	dt := judgedAt.Sub(participationStart(c, p))
	if dt < 0 {
		dt = 0
	}
	return uint(dt / time.Second)
}

// OI: 总分为各题得分之和, 有得分的题计用时
type oiFormat struct{}

func (oiFormat) Name() string {
	return "OI"
}

func (oiFormat) UpdateParticipation(c *Contest, p *ContestParticipation, judgedAt time.Time, earned map[string]uint, cps []ContestProblem) {
	dt := elapsedSeconds(c, p, judgedAt)
	p.ProblemStatus = earned
	p.Score, p.Cumtime = 0, 0
	for _, pts := range earned {
		p.Score += int64(pts)
		if pts > 0 {
			p.Cumtime += dt
		}
	}
}

func (oiFormat) DisplayUserProblem(p *ContestParticipation, cp *ContestProblem) common.H {
	pts, ok := p.ProblemStatus[strconv.FormatInt(cp.ID, 10)]
	return common.H{
		"contest_problem_id": cp.ID,
		"answered":           ok,
		"points":             pts,
		"full":               cp.Points,
	}
}

func (oiFormat) DisplayParticipationResult(p *ContestParticipation) common.H {
	return common.H{
		"score":   p.Score,
		"cumtime": p.Cumtime,
	}
}

// ACM: 只统计完全做对的题数, 每道过题计用时
type acmFormat struct{}

func (acmFormat) Name() string {
	return "ACM"
}

func (acmFormat) UpdateParticipation(c *Contest, p *ContestParticipation, judgedAt time.Time, earned map[string]uint, cps []ContestProblem) {
	dt := elapsedSeconds(c, p, judgedAt)
	p.ProblemStatus = earned
	p.Score, p.Cumtime = 0, 0
	for _, cp := range cps {
		if pts, ok := earned[strconv.FormatInt(cp.ID, 10)]; ok && pts >= cp.Points {
			p.Score++
			p.Cumtime += dt
		}
	}
}

func (acmFormat) DisplayUserProblem(p *ContestParticipation, cp *ContestProblem) common.H {
	pts, ok := p.ProblemStatus[strconv.FormatInt(cp.ID, 10)]
	return common.H{
		"contest_problem_id": cp.ID,
		"answered":           ok,
		"solved":             ok && pts >= cp.Points,
	}
}

func (acmFormat) DisplayParticipationResult(p *ContestParticipation) common.H {
	return common.H{
		"solved":  p.Score,
		"cumtime": p.Cumtime,
	}
}
