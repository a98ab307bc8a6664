package middleware

import (
	"net/http"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
	"github.com/casbin/casbin/v2/util"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ExamSeatAllocator/internal/auth"
)

const policyFile = "rbac_policy.csv"

// casbinModel is the RBAC model, kept in code so the binary only needs the
// policy CSV alongside it.
const casbinModel = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act, eft

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && r.act == p.act`

var (
	enforcer     *casbin.Enforcer
	enforcerErr  error
	enforcerOnce sync.Once
)

// InitCasbinEnforcer initializes the Casbin enforcer singleton.
func InitCasbinEnforcer() (*casbin.Enforcer, error) {
	enforcerOnce.Do(func() {
		m, err := model.NewModelFromString(casbinModel)
		if err != nil {
			enforcerErr = err
			return
		}
		adapter := fileadapter.NewAdapter(policyFile)
		enforcer, enforcerErr = casbin.NewEnforcer(m, adapter)
		if enforcerErr != nil {
			return
		}
		enforcer.AddFunction("keyMatch", util.KeyMatchFunc)
	})
	return enforcer, enforcerErr
}

// CasbinMiddleware enforces role-based access per request using the role
// from the JWT claims, the request path and the HTTP method.
func CasbinMiddleware(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*auth.JWTClaims)
			if !ok || claims == nil {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Unauthorized: missing user claims"})
			}
			enf, err := InitCasbinEnforcer()
			if err != nil {
				logger.Error("casbin enforcer init failed", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "RBAC system error"})
			}
			role := claims.Role
			obj := c.Request().URL.Path
			act := c.Request().Method
			allowed, err := enf.Enforce(role, obj, act)
			if err != nil {
				logger.Error("casbin enforce failed", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "RBAC system error"})
			}
			if !allowed {
				logger.Debug("request denied by policy",
					zap.String("role", role), zap.String("path", obj), zap.String("method", act))
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden: insufficient permissions"})
			}
			return next(c)
		}
	}
}
