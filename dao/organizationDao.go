package dao

import (
	"HappyEducation/common"
	"HappyEducation/model"
	"strconv"
	"time"
)

const (
	ORGANIZATION_REDIS_EXPIRE = 0
	ORGANIZATION_HASH_KEY     = "organization_hash(name:id)"
)

type Organization = model.Organization

type OrganizationDao struct {
	ID           int64
	Name         string
	Organization *Organization
}

func (od *OrganizationDao) GetRedisExpire() time.Duration {
	return ORGANIZATION_REDIS_EXPIRE
}
func (od *OrganizationDao) GetTableName() string {
	return "organization"
}
func (od *OrganizationDao) GetSelf() interface{} {
	if od.Organization == nil {
		od.Organization = &Organization{}
	}
	return od.Organization
}
func (od *OrganizationDao) GetRedisKey() string {
	return od.GetTableName() + "_" + strconv.FormatInt(od.GetID(), 10)
}
func (od *OrganizationDao) GetID() int64 {
	if od.ID == 0 {
		if od.Organization != nil && od.Organization.ID != 0 {
			od.ID = od.Organization.ID
		} else {
			name := od.Name
			if name == "" && od.Organization != nil {
				name = od.Organization.Name
			}
			if name != "" {
				if rdb.HExists(ctx, ORGANIZATION_HASH_KEY, name).Val() {
					od.ID = common.StrToInt64(rdb.HGet(ctx, ORGANIZATION_HASH_KEY, name).Val())
				} else {
					x := new(Col)
					if ok, err := engine.SQL("select id from organization where name = ?", name).Get(&x.data); err == nil && ok {
						od.ID = x.ToInt64()
					}
				}
			}
		}
	}
	return od.ID
}

func (od *OrganizationDao) GetName() string {
	if od.Name == "" {
		if od.Organization != nil && od.Organization.Name != "" {
			od.Name = od.Organization.Name
		} else {
			od.Name = OneCol(od, "name").ToString()
		}
	}
	return od.Name
}

func (od *OrganizationDao) BeforePutToRedis() error {
	rdb.HSet(ctx, ORGANIZATION_HASH_KEY, od.GetName(), od.GetID())
	return nil
}

func (od *OrganizationDao) BeforeDelete() error {
	rdb.HDel(ctx, ORGANIZATION_HASH_KEY, od.GetName())
	return nil
}

func (od *OrganizationDao) Create() error {
	return Create(od)
}

//把用户加入组织, 组织人数是展示统计, 允许弱一致
func AddUserToOrganization(uid, oid int64) error {
	ud := &UserDao{ID: uid}
	orgs := ud.GetOrganizations()
	for _, o := range orgs {
		if o == oid {
			return nil
		}
	}
	orgs = append(orgs, oid)
	if err := ud.Update(common.H{"organizations": orgs}); err != nil {
		return err
	}
	od := &OrganizationDao{ID: oid}
	return UpdateCols(od, common.H{"user_count": OneCol(od, "user_count").ToUint() + 1})
}

func GetOrganizationNames(ids []int64) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		od := &OrganizationDao{ID: id}
		names[i] = od.GetName()
	}
	return names
}
