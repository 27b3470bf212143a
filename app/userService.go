package app

import (
	"HappyEducation/common"
	"HappyEducation/dao"
	"github.com/gin-gonic/gin"
	"math/rand"
)

func ping(c *gin.Context) {
	c.Set("ping", "pong")
}

func autologin(c *gin.Context) {
	id := getUserID(c)
	if id != 0 {
		ud := &dao.UserDao{ID: id}
		cols := dao.Cols(ud, "avatar", "is_admin", "is_super_admin", "privilege", "current_contest_id")
		c.Set("username", getUserName(c))
		c.Set("avatar", cols[0].ToString())
		c.Set("is_admin", cols[1].ToBool())
		c.Set("is_super_admin", cols[2].ToBool())
		c.Set("privilege", cols[3].ToUint64())
		c.Set("current_contest_id", cols[4].ToInt64())
		return
	}
	setError(c, 401, "未登录")
}

//登陆请求
func login(c *gin.Context) {
	if isLogin(c) {
		deleteSession(c)
	}
	form := new(loginValidtor)
	if err := c.ShouldBind(form); err != nil {
		setError(c, 403, err.Error())
		return
	}
	form.Password = common.PassWordHandle(form.Password)
	ud := &dao.UserDao{Username: form.Username}
	id := ud.GetID()
	if id <= 0 {
		setError(c, 403, "用户名不存在")
		return
	}
	if pwd := dao.OneCol(ud, "password").ToString(); pwd != form.Password {
		setError(c, 403, "密码错误")
		return
	}
	if !dao.IsInRedis(ud) {
		dao.GetSelfAll(ud)
		dao.PutToRedis(ud)
	}
	setSession(c, ud.Username, ud.GetID())
	autologin(c)
}

func logout(c *gin.Context) {
	deleteSession(c)
	c.Set("msg", "退出成功")
}

//注册请求
func register(c *gin.Context) {
	if isLogin(c) {
		setError(c, 403, "请先退出当前账户")
		return
	}
	form := new(registerValidtor)
	if err := c.ShouldBind(form); err != nil {
		setError(c, 403, err.Error())
		return
	}
	form.Password = string(common.RSADecrypt(form.Password))
	if ok, errInfo := form.isOk(); !ok {
		setError(c, 403, errInfo)
		return
	}
	if dao.Count(new(dao.UsersData), []string{"username"}, []interface{}{form.Username}) > 0 {
		setError(c, 403, "用户名已存在")
		return
	}
	if dao.Count(new(dao.UsersData), []string{"email"}, []interface{}{form.Email}) > 0 {
		setError(c, 403, "邮箱已被注册")
		return
	}
	form.Password = common.GetMD5Password(form.Password)
	ud := &dao.UserDao{
		User: &dao.User{
			Username: form.Username,
			Password: form.Password,
			School:   form.School,
			Email:    form.Email,
			Avatar:   common.Avatars[rand.Intn(len(common.Avatars))],
		},
	}
	if err := ud.Create(); err != nil {
		setError(c, 500, err.Error())
		return
	}
	setSession(c, form.Username, ud.GetID())
	autologin(c)
}

//更新用户的信息
func update(c *gin.Context) {
	form := new(updateValidtor)
	if err := c.ShouldBind(form); err != nil {
		setError(c, 403, err.Error())
		return
	}
	if form.NewPassword != "" {
		form.NewPassword = string(common.RSADecrypt(form.NewPassword))
	}
	if form.OldPassword != "" {
		form.OldPassword = string(common.RSADecrypt(form.OldPassword))
	}
	if ok, errInfo := form.isOk(); !ok {
		setError(c, 403, errInfo)
		return
	}
	if form.NewPassword != "" {
		form.NewPassword = common.GetMD5Password(form.NewPassword)
	}
	if form.OldPassword != "" {
		form.OldPassword = common.GetMD5Password(form.OldPassword)
	}
	name := getUserName(c)
	mp := make(map[string]interface{}) //要修改的内容
	ud := &dao.UserDao{ID: getUserID(c)}
	if form.Username != "" && form.Username != name {
		if dao.Count(new(dao.UsersData), []string{"username"}, []interface{}{form.Username}) > 0 {
			setError(c, 403, "用户名已存在")
			return
		}
		mp["username"] = form.Username
	}
	cols := dao.Cols(ud, "password", "email")
	if form.NewPassword != "" {
		if form.OldPassword != cols[0].ToString() {
			setError(c, 403, "密码错误")
			return
		}
		mp["password"] = form.NewPassword
	}

	if form.Email != "" && form.Email != cols[1].ToString() {
		if dao.Count(new(dao.UsersData), []string{"email"}, []interface{}{form.Email}) > 0 {
			setError(c, 403, "邮箱已被注册")
			return
		}
		mp["email"] = form.Email
	}

	if form.School != "" {
		mp["school"] = form.School
	}
	if form.Desc != "" {
		mp["description"] = form.Desc
	}
	if len(mp) > 0 {
		if err := ud.Update(mp); err != nil {
			setError(c, 500, err.Error())
			return
		}
	}
	if _, ok := mp["username"]; ok {
		setSession(c, mp["username"].(string), ud.GetID())
	}
	c.Set("msg", "修改成功")
}

func showAvatars(c *gin.Context) {
	c.Set("avatars", common.Avatars)
}

func changeAvatar(c *gin.Context) {
	if avatar := c.DefaultQuery("avatar", ""); avatar == "" {
		setError(c, 403, "参数错误")
		return
	} else {
		ud := &dao.UserDao{ID: getUserID(c)}
		dao.UpdateCols(ud, common.H{"avatar": avatar})
	}
	c.Set("result", "ok")
}

func getUserInfo(c *gin.Context) {
	ud := &dao.UserDao{Username: c.Query("username")}
	if !dao.Exists(ud) {
		setError(c, 403, "没有该用户")
		return
	}
	cols := dao.Cols(ud, "username", "created_at", "school", "email", "description", "avatar", "is_admin", "organizations", "contest_count")
	info := common.H{
		"username":      cols[0].ToString(),
		"created_at":    cols[1].ToTime().Format(common.TIME_FORMAT),
		"school":        cols[2].ToString(),
		"email":         cols[3].ToString(),
		"description":   cols[4].ToString(),
		"avatar":        cols[5].ToString(),
		"is_admin":      cols[6].ToBool(),
		"organizations": dao.GetOrganizationNames(cols[7].ToInt64Slice()),
		"contest_count": cols[8].ToUint(),
	}
	c.Set("info", info)
}

func searchUsers(c *gin.Context) {
	data := make([]common.H, 0)
	wants := []string{"username", "school", "organizations", "contest_count"}
	if name := c.DefaultQuery("username", ""); name != "" {
		ud := &dao.UserDao{Username: name}
		if dao.Exists(ud) {
			cols := dao.Cols(ud, wants...)
			data = append(data, common.H{
				"username":      cols[0].ToString(),
				"school":        cols[1].ToString(),
				"organizations": dao.GetOrganizationNames(cols[2].ToInt64Slice()),
				"contest_count": cols[3].ToUint(),
			})
		}
	} else {
		l := common.StrToInt64(c.DefaultQuery("l", "1"))
		r := common.StrToInt64(c.DefaultQuery("r", "50"))
		total, us := dao.SearchUsers(l, r, nil, nil)
		for _, u := range us {
			data = append(data, common.H{
				"username":      u.Username,
				"school":        u.School,
				"organizations": dao.GetOrganizationNames(u.Organizations),
				"contest_count": u.ContestCount,
			})
		}
		c.Set("total", total)
	}
	c.Set("data", data)
}
