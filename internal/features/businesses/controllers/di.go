package businesses_controllers

import (
	businesses_services "receipthub/internal/features/businesses/services"
)

var businessController = &BusinessController{
	businessService: businesses_services.GetBusinessService(),
}
var membershipController = &MembershipController{
	membershipService: businesses_services.GetMembershipService(),
}

func GetBusinessController() *BusinessController {
	return businessController
}

func GetMembershipController() *MembershipController {
	return membershipController
}
