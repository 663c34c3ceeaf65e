package services

import (
	"linkea/internal/app/deps"
	"linkea/internal/core/services"
	"linkea/internal/core/services/auth"
	getuser "linkea/internal/core/services/get_user"
	getuserbyhandle "linkea/internal/core/services/get_user_by_handle"
	loginwithemail "linkea/internal/core/services/log_in_with_email"
	resetpassword "linkea/internal/core/services/reset_password"
	searchbyhandle "linkea/internal/core/services/search_by_handle"
	sendpasswordresettoken "linkea/internal/core/services/send_password_reset_token"
	signupwithemail "linkea/internal/core/services/sign_up_with_email"
	updateprofile "linkea/internal/core/services/update_profile"
	uploadimage "linkea/internal/core/services/upload_image"
)

type Services struct {
	SignUpWithEmail        services.Service[signupwithemail.Input, signupwithemail.Result]
	LogInWithEmail         services.Service[loginwithemail.Input, loginwithemail.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]

	GetUser       services.Service[getuser.Input, getuser.Result]
	UpdateProfile services.Service[updateprofile.Input, updateprofile.Result]
	UploadImage   services.Service[uploadimage.Input, uploadimage.Result]

	GetUserByHandle services.Service[getuserbyhandle.Input, getuserbyhandle.Result]
	SearchByHandle  services.Service[searchbyhandle.Input, searchbyhandle.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = signupwithemail.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.Now,
	)
	s.LogInWithEmail = loginwithemail.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.CredentialIssuer,
	)
	s.SendPasswordResetToken = sendpasswordresettoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetTokenGenerator,
		deps.MailSender,
		deps.Config.FrontendURL,
		deps.Now,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetTokenGenerator,
		deps.PasswordHasher,
		deps.Now,
	)

	s.GetUser = auth.WithAuthentication(
		deps.Logger,
		deps.CredentialVerifier,
		deps.UserRepository,
		getuser.New(),
	)
	s.UpdateProfile = auth.WithAuthentication(
		deps.Logger,
		deps.CredentialVerifier,
		deps.UserRepository,
		updateprofile.New(deps.Logger, deps.UserRepository, deps.ProfileCache),
	)
	s.UploadImage = auth.WithAuthentication(
		deps.Logger,
		deps.CredentialVerifier,
		deps.UserRepository,
		uploadimage.New(deps.Logger, deps.UserRepository, deps.ImageStore, deps.ProfileCache),
	)

	s.GetUserByHandle = getuserbyhandle.NewWithCaching(
		deps.Logger,
		deps.ProfileCache,
		getuserbyhandle.New(deps.Logger, deps.UserRepository),
	)
	s.SearchByHandle = searchbyhandle.New(deps.Logger, deps.UserRepository)

	return s
}
