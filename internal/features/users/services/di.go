package users_services

import (
	users_repositories "receipthub/internal/features/users/repositories"
)

var userRepository = &users_repositories.UserRepository{}
var secretKeyRepository = &users_repositories.SecretKeyRepository{}
var settingsRepository = &users_repositories.UsersSettingsRepository{}

var settingsService = NewSettingsService(settingsRepository)
var userService = NewUserService(userRepository, secretKeyRepository, settingsService)
var managementService = NewManagementService(userRepository)

func GetUserService() *UserService {
	return userService
}

func GetSettingsService() *SettingsService {
	return settingsService
}

func GetManagementService() *ManagementService {
	return managementService
}
