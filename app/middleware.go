package app

import (
	"HappyEducation/dao"
	"github.com/gin-gonic/gin"
)

//中间件

//验证是否登陆
func AuthLogin(c *gin.Context) {
	if !isLogin(c) {
		setError(c, 401, "未登陆")
		c.Abort()
	}
}

//管理员验证
func AuthAdmin(c *gin.Context) {
	id := getUserID(c)
	if id != 0 {
		ud := &dao.UserDao{ID: id}
		if !dao.OneCol(ud, "is_admin").ToBool() {
			setError(c, 403, "没有权限")
			c.Abort()
		}
	} else {
		setError(c, 401, "未登陆")
		c.Abort()
	}
}

func AuthSuperAdmin(c *gin.Context) {
	id := getUserID(c)
	if id != 0 {
		ud := &dao.UserDao{ID: id}
		if !dao.OneCol(ud, "is_super_admin").ToBool() {
			setError(c, 403, "没有权限")
			c.Abort()
		}
	} else {
		setError(c, 401, "未登陆")
		c.Abort()
	}
}

//c中没有返回码, 默认为200,
func jsonResponse(c *gin.Context) {
	c.Next()
	statusCode := c.Writer.Status()
	if statusCode == 404 {
		c.JSON(404, gin.H{"errmsg": "Not Found"})
	} else if _, exist := c.Get("noPack"); !exist {
		delete(c.Keys, "github.com/gin-contrib/sessions")
		c.JSON(200, c.Keys)
	}
}

func IsSuperAdmin(c *gin.Context) bool {
	if id := getUserID(c); id != 0 {
		ud := &dao.UserDao{ID: id}
		return ud.IsSuperAdmin()
	}
	return false
}

//管理员权限验证
func hasPrivilege(c *gin.Context, want PrivilegeType) bool {
	ud := &dao.UserDao{ID: getUserID(c)}
	if ud.GetID() == 0 {
		return false
	}
	return ud.IsSuperAdmin() || (dao.OneCol(ud, "privilege").ToUint64()&want != 0)
}

func __ScanPrivateProblem(c *gin.Context) {
	if !hasPrivilege(c, ScanPrivateProblem) {
		setError(c, 403, "没有权限")
		c.Abort()
	}
}

func __CreateProblem(c *gin.Context) {
	if !hasPrivilege(c, CreateProblem) {
		setError(c, 403, "没有权限")
		c.Abort()
	}
}

func __UpdateProblem(c *gin.Context) {
	if !hasPrivilege(c, UpdateProblem) {
		setError(c, 403, "没有权限")
		c.Abort()
	}
}

func __DeleteProblem(c *gin.Context) {
	if !hasPrivilege(c, DeleteProblem) {
		setError(c, 403, "没有权限")
		c.Abort()
	}
}

func __CreateContest(c *gin.Context) {
	if !hasPrivilege(c, CreateContest) {
		setError(c, 403, "没有权限")
		c.Abort()
	}
}

func __UpdateContest(c *gin.Context) {
	if !hasPrivilege(c, UpdateContest) {
		setError(c, 403, "没有权限")
		c.Abort()
	}
}

func __DeleteContest(c *gin.Context) {
	if !hasPrivilege(c, DeleteContest) {
		setError(c, 403, "没有权限")
		c.Abort()
	}
}

func __ScanContestSubmission(c *gin.Context) {
	if !hasPrivilege(c, ScanContestSubmission) {
		setError(c, 403, "没有权限")
		c.Abort()
	}
}

func __DisqualifyUser(c *gin.Context) {
	if !hasPrivilege(c, DisqualifyUser) {
		setError(c, 403, "没有权限")
		c.Abort()
	}
}

func __ScanUserInfo(c *gin.Context) {
	if !hasPrivilege(c, ScanUserInfo) {
		setError(c, 403, "没有权限")
		c.Abort()
	}
}

func __SetUserPrivilege(c *gin.Context) {
	if !hasPrivilege(c, SetUserPrivilege) {
		setError(c, 403, "没有权限")
		c.Abort()
	}
}

func __ManageOrganization(c *gin.Context) {
	if !hasPrivilege(c, ManageOrganization) {
		setError(c, 403, "没有权限")
		c.Abort()
	}
}
