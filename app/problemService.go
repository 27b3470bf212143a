package app

import (
	"HappyEducation/common"
	"HappyEducation/dao"
	"HappyEducation/model"
	"github.com/gin-gonic/gin"
	"math/rand"
)

func getLevels(c *gin.Context) {
	levels := dao.GetLevels()
	data := make([]common.H, len(levels))
	for i, l := range levels {
		data[i] = common.H{
			"id":   l.ID,
			"code": l.Code,
			"name": l.Name,
		}
	}
	c.Set("data", data)
}

//题库按级展示, 普通用户只能看到公开题
func getProblemset(c *gin.Context) {
	lid := common.StrToInt64(c.DefaultQuery("level_id", "0"))
	if lid == 0 {
		setError(c, 403, "参数错误")
		return
	}
	limit := common.StrToInt(c.DefaultQuery("limit", "0"))
	onlyPublic := !hasPrivilege(c, ScanPrivateProblem)
	ps := dao.GetProblemsOfLevel(lid, onlyPublic, limit)
	data := make([]common.H, len(ps))
	for i, p := range ps {
		data[i] = common.H{
			"code":        p.Code,
			"title":       p.Title,
			"answer_type": p.AnswerType,
		}
	}
	c.Set("data", data)
}

//单题练习页, 选项每次都是新的乱序
func getOneProblem(c *gin.Context) {
	pd := &dao.ProblemDao{Code: c.Query("code")}
	if pd.GetID() == 0 || !dao.Exists(pd) {
		setError(c, 404, "不存在该题目")
		return
	}
	if err := dao.GetSelfAll(pd); err != nil {
		setError(c, 404, "不存在该题目")
		return
	}
	p := pd.Problem
	uid := getUserID(c)
	isStaff := p.IsAuthor(uid) || IsSuperAdmin(c) || hasPrivilege(c, ScanPrivateProblem)
	if !p.IsPublic && !isStaff {
		if !p.IsOrganizationPrivate {
			setError(c, 404, "不存在该题目")
			return
		}
		ud := &dao.UserDao{ID: uid}
		in := false
		for _, org := range ud.GetOrganizations() {
			for _, o := range p.Organizations {
				if org == o {
					in = true
				}
			}
		}
		if !in {
			setError(c, 404, "不存在该题目")
			return
		}
	}

	info := common.H{
		"code":        p.Code,
		"title":       p.Title,
		"description": p.Description,
		"answer_type": p.AnswerType,
		"level_id":    p.LevelID,
	}
	if p.AnswerType == model.ANSWER_TYPE_MC {
		info["choices"] = dao.GetAnswerChoices(p.ID, rand.Int63())
	}
	//出题人和管理员能直接看到答案
	if isStaff {
		ans := dao.GetAnswers(p.ID)
		reveal := make([]common.H, len(ans))
		for i, a := range ans {
			reveal[i] = common.H{
				"description": a.Description,
				"is_correct":  a.IsCorrect,
				"sequence":    a.Sequence,
			}
		}
		info["answers"] = reveal
	}
	c.Set("data", info)
}

//练习页的自测: 不落库, 直接判对错
func checkPracticeAnswer(c *gin.Context) {
	pd := &dao.ProblemDao{Code: c.PostForm("code")}
	if pd.GetID() == 0 || !dao.Exists(pd) {
		setError(c, 404, "不存在该题目")
		return
	}
	if err := dao.GetSelfAll(pd); err != nil {
		setError(c, 404, "不存在该题目")
		return
	}
	if pd.Problem.AnswerType != model.ANSWER_TYPE_FILL {
		setError(c, 403, "只有填空题支持自测")
		return
	}
	correct := dao.GetCorrectAnswer(pd.GetID())
	ok := correct != nil && common.SameFillAnswer(c.PostForm("output"), correct.Description)
	c.Set("correct", ok)
}
