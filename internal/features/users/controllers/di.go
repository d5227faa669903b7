package users_controllers

import (
	users_services "receipthub/internal/features/users/services"
)

var userController = &UserController{
	userService: users_services.GetUserService(),
}
var managementController = &ManagementController{
	managementService: users_services.GetManagementService(),
}
var settingsController = &SettingsController{
	settingsService: users_services.GetSettingsService(),
}

func GetUserController() *UserController {
	return userController
}

func GetManagementController() *ManagementController {
	return managementController
}

func GetSettingsController() *SettingsController {
	return settingsController
}
